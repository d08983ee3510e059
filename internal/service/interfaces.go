// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Import operations
	SaveImport(ctx context.Context, imp *model.Import) error
	GetImport(ctx context.Context, id string) (*model.Import, error)
	ListImports(ctx context.Context) ([]model.ImportSummary, error)
	DeleteImport(ctx context.Context, id string) error

	// Bond operations
	UpdateBond(ctx context.Context, importID string, sequence int, update model.BondUpdate) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TextExtractor produces the plain text of a source document.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
