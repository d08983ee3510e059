package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/model"
)

// SaveImport writes an import with all its bonds and remunerations.
// Saving an existing ID replaces the stored copy.
func (s *SQLiteStorage) SaveImport(ctx context.Context, imp *model.Import) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateImport(imp); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteImportTx(ctx, tx, imp.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}

		warnings, err := marshalStrings(imp.Extract.Warnings)
		if err != nil {
			return err
		}

		p := imp.Extract.Profile
		_, err = tx.ExecContext(ctx, `
			INSERT INTO imports (
				id, source_file, imported_at, gender,
				subject_name, tax_id, birth_date, mother_name, warnings
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			imp.ID, imp.SourceFile, imp.ImportedAt.UTC(), string(imp.Gender),
			nullString(p.Name), nullString(p.TaxID), nullDate(p.BirthDate), nullString(p.MotherName), warnings,
		)
		if err != nil {
			return fmt.Errorf("failed to insert import: %w", err)
		}

		for i := range imp.Extract.Bonds {
			if err := saveBondTx(ctx, tx, imp.ID, &imp.Extract.Bonds[i]); err != nil {
				return err
			}
		}

		slog.Debug("Saved import",
			"id", imp.ID,
			"source", imp.SourceFile,
			"bonds", len(imp.Extract.Bonds))
		return nil
	})
}

// GetImport loads an import by ID. Bonds come back in sequence order.
func (s *SQLiteStorage) GetImport(ctx context.Context, id string) (*model.Import, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		imp                                       model.Import
		gender                                    string
		name, taxID, birthDate, motherName, warns sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_file, imported_at, gender,
		       subject_name, tax_id, birth_date, mother_name, warnings
		FROM imports
		WHERE id = ?
	`, id).Scan(
		&imp.ID, &imp.SourceFile, &imp.ImportedAt, &gender,
		&name, &taxID, &birthDate, &motherName, &warns,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("import %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import: %w", err)
	}

	imp.Gender = model.Gender(gender)
	imp.Extract.Profile = model.SubjectProfile{
		Name:       stringPtr(name),
		TaxID:      stringPtr(taxID),
		MotherName: stringPtr(motherName),
		Gender:     imp.Gender,
	}
	if imp.Extract.Profile.BirthDate, err = parseNullDate(birthDate); err != nil {
		return nil, err
	}
	if imp.Extract.Warnings, err = unmarshalStrings(warns); err != nil {
		return nil, err
	}

	if imp.Extract.Bonds, err = loadBonds(ctx, s.db, id); err != nil {
		return nil, err
	}

	return &imp, nil
}

// ListImports returns every saved import, newest first.
func (s *SQLiteStorage) ListImports(ctx context.Context) ([]model.ImportSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.source_file, i.imported_at, i.subject_name,
		       (SELECT COUNT(*) FROM bonds b WHERE b.import_id = i.id)
		FROM imports i
		ORDER BY i.imported_at DESC, i.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.ImportSummary
	for rows.Next() {
		var (
			sum  model.ImportSummary
			name sql.NullString
		)
		if err := rows.Scan(&sum.ID, &sum.SourceFile, &sum.ImportedAt, &name, &sum.BondCount); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		sum.SubjectName = name.String
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate imports: %w", err)
	}

	return summaries, nil
}

// DeleteImport removes an import with its bonds and remunerations.
func (s *SQLiteStorage) DeleteImport(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return deleteImportTx(ctx, tx, id)
	})
}

func deleteImportTx(ctx context.Context, q queryable, id string) error {
	for _, query := range []string{
		`DELETE FROM remunerations WHERE import_id = ?`,
		`DELETE FROM bonds WHERE import_id = ?`,
	} {
		if _, err := q.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete import rows: %w", err)
		}
	}

	result, err := q.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("import %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func marshalStrings(values []string) (sql.NullString, error) {
	if len(values) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode list: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalStrings(ns sql.NullString) ([]string, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(ns.String), &values); err != nil {
		return nil, fmt.Errorf("failed to parse list: %w", err)
	}
	return values, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return model.StringPtr(ns.String)
}

func nullDate(d *model.Date) sql.NullString {
	if d == nil || d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDate(ns sql.NullString) (*model.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := model.ParseISODate(ns.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored date: %w", err)
	}
	return &d, nil
}

func parseSalary(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse stored salary %q: %w", s, err)
	}
	return d, nil
}
