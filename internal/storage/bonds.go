package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/model"
)

func saveBondTx(ctx context.Context, q queryable, importID string, b *model.Bond) error {
	indicators, err := marshalStrings(b.Indicators)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO bonds (
			import_id, sequence, registration_id, employer_code, origin_name,
			category, start_date, end_date, end_source, activity_type,
			indicators, concurrent, included
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		importID, b.Sequence, b.RegistrationID, b.EmployerCode, b.OriginName,
		string(b.Category), nullDate(b.Start), nullDate(b.End), string(b.EndSource), string(b.ActivityType),
		indicators, b.Concurrent, b.Included,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bond %d: %w", b.Sequence, err)
	}

	for pos, r := range b.Remunerations {
		codes, err := marshalStrings(r.Indicators)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO remunerations (import_id, sequence, position, competence, salary, indicators)
			VALUES (?, ?, ?, ?, ?, ?)
		`, importID, b.Sequence, pos, r.Competence.String(), r.Salary.String(), codes)
		if err != nil {
			return fmt.Errorf("failed to insert remuneration %s of bond %d: %w", r.Competence, b.Sequence, err)
		}
	}
	return nil
}

const bondColumns = `sequence, registration_id, employer_code, origin_name,
	category, start_date, end_date, end_source, activity_type,
	indicators, concurrent, included`

func scanBond(row interface{ Scan(...any) error }) (model.Bond, error) {
	var (
		b                      model.Bond
		category, endSource    string
		activity               string
		start, end, indicators sql.NullString
		err                    error
	)
	if err = row.Scan(
		&b.Sequence, &b.RegistrationID, &b.EmployerCode, &b.OriginName,
		&category, &start, &end, &endSource, &activity,
		&indicators, &b.Concurrent, &b.Included,
	); err != nil {
		return b, err
	}

	b.Category = model.ActivityCategory(category)
	b.EndSource = model.EndDateSource(endSource)
	b.ActivityType = model.ActivityType(activity)
	if b.Start, err = parseNullDate(start); err != nil {
		return b, err
	}
	if b.End, err = parseNullDate(end); err != nil {
		return b, err
	}
	if b.Indicators, err = unmarshalStrings(indicators); err != nil {
		return b, err
	}
	return b, nil
}

func loadBonds(ctx context.Context, q queryable, importID string) ([]model.Bond, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+bondColumns+`
		FROM bonds
		WHERE import_id = ?
		ORDER BY sequence
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bonds []model.Bond
	index := make(map[int]int)
	for rows.Next() {
		b, err := scanBond(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bond: %w", err)
		}
		b.Remunerations = []model.ContributionMonth{}
		index[b.Sequence] = len(bonds)
		bonds = append(bonds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonds: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to close bond rows: %w", err)
	}

	remRows, err := q.QueryContext(ctx, `
		SELECT sequence, competence, salary, indicators
		FROM remunerations
		WHERE import_id = ?
		ORDER BY sequence, position
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query remunerations: %w", err)
	}
	defer func() { _ = remRows.Close() }()

	for remRows.Next() {
		var (
			seq                int
			competence, salary string
			codes              sql.NullString
		)
		if err := remRows.Scan(&seq, &competence, &salary, &codes); err != nil {
			return nil, fmt.Errorf("failed to scan remuneration: %w", err)
		}

		var entry model.ContributionMonth
		if entry.Competence, err = model.ParseCompetence(competence); err != nil {
			return nil, fmt.Errorf("failed to parse stored competence: %w", err)
		}
		if entry.Salary, err = parseSalary(salary); err != nil {
			return nil, err
		}
		if entry.Indicators, err = unmarshalStrings(codes); err != nil {
			return nil, err
		}

		i, ok := index[seq]
		if !ok {
			continue
		}
		bonds[i].Remunerations = append(bonds[i].Remunerations, entry)
	}
	if err := remRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remunerations: %w", err)
	}

	return bonds, nil
}

// UpdateBond applies user edits to one saved bond.
func (s *SQLiteStorage) UpdateBond(ctx context.Context, importID string, sequence int, update model.BondUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(importID, "importID"); err != nil {
		return err
	}
	if err := validateBondUpdate(update); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT `+bondColumns+`
			FROM bonds
			WHERE import_id = ? AND sequence = ?
		`, importID, sequence)

		bond, err := scanBond(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("bond %d of import %s: %w", sequence, importID, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get bond: %w", err)
		}

		update.Apply(&bond)
		if bond.Start != nil && bond.End != nil && bond.End.Before(*bond.Start) {
			return fmt.Errorf("%w: end %s is before start %s", ErrInvalidBondUpdate, bond.End, bond.Start)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE bonds
			SET start_date = ?, end_date = ?, end_source = ?,
			    activity_type = ?, concurrent = ?, included = ?
			WHERE import_id = ? AND sequence = ?
		`,
			nullDate(bond.Start), nullDate(bond.End), string(bond.EndSource),
			string(bond.ActivityType), bond.Concurrent, bond.Included,
			importID, sequence,
		)
		if err != nil {
			return fmt.Errorf("failed to update bond: %w", err)
		}
		return nil
	})
}
