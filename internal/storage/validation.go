package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidImport     = errors.New("invalid import")
	ErrInvalidBondUpdate = errors.New("invalid bond update")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateImport checks an import before it is written.
func validateImport(imp *model.Import) error {
	if imp == nil {
		return fmt.Errorf("%w: import", ErrNilParameter)
	}
	if strings.TrimSpace(imp.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidImport)
	}
	if strings.TrimSpace(imp.SourceFile) == "" {
		return fmt.Errorf("%w: missing source file", ErrInvalidImport)
	}
	if imp.ImportedAt.IsZero() {
		return fmt.Errorf("%w: missing import time", ErrInvalidImport)
	}
	if len(imp.Extract.Bonds) == 0 {
		return fmt.Errorf("%w: no bonds", ErrInvalidImport)
	}

	seen := make(map[int]struct{}, len(imp.Extract.Bonds))
	for _, b := range imp.Extract.Bonds {
		if _, dup := seen[b.Sequence]; dup {
			return fmt.Errorf("%w: duplicate sequence %d", ErrInvalidImport, b.Sequence)
		}
		seen[b.Sequence] = struct{}{}
	}
	return nil
}

// validateBondUpdate rejects empty updates, unknown activity types and reversed dates.
func validateBondUpdate(update model.BondUpdate) error {
	if update.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidBondUpdate)
	}
	if update.ActivityType != nil && !update.ActivityType.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidBondUpdate, *update.ActivityType)
	}
	if update.Start != nil && update.End != nil && update.End.Before(*update.Start) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidBondUpdate, update.End, update.Start)
	}
	return nil
}
