package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ListRuns returns recorded runs, newest first. A limit of zero or less
// returns every run.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, seq, input, input_hash, status, error_code, message, program_hash,
		       procedures, implementations, cached, translator_version, ir_version
		FROM runs
		ORDER BY seq DESC, id COLLATE BINARY ASC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID,
			&r.Seq,
			&r.Input,
			&r.InputHash,
			&r.Status,
			&r.ErrorCode,
			&r.Message,
			&r.ProgramHash,
			&r.Procedures,
			&r.Implementations,
			&r.Cached,
			&r.TranslatorVersion,
			&r.IRVersion,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LookupOutput returns the cached output for inputHash. The boolean is
// false when nothing is cached.
func (s *Store) LookupOutput(ctx context.Context, inputHash string) (Output, bool, error) {
	var out Output
	err := s.db.QueryRowContext(ctx, `
		SELECT input_hash, seq, program_hash, procedures, implementations, program
		FROM outputs
		WHERE input_hash = ?
	`, inputHash).Scan(
		&out.InputHash,
		&out.Seq,
		&out.ProgramHash,
		&out.Procedures,
		&out.Implementations,
		&out.Program,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Output{}, false, nil
	}
	if err != nil {
		return Output{}, false, fmt.Errorf("lookup output: %w", err)
	}
	return out, true, nil
}
