package store

import (
	"context"
	"database/sql"
	"fmt"
)

// RecordRun inserts a run and returns it with ID and Seq filled in. An
// empty ID is taken from the store's IDGenerator. Seq is always assigned
// here as MAX(seq)+1.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.Status != StatusOK && run.Status != StatusError {
		return Run{}, fmt.Errorf("record run: invalid status %q", run.Status)
	}
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		seq, err := nextSeq(ctx, tx, "runs")
		if err != nil {
			return err
		}
		run.Seq = seq
		_, err = tx.ExecContext(ctx, `
			INSERT INTO runs
			(id, seq, input, input_hash, status, error_code, message, program_hash,
			 procedures, implementations, cached, translator_version, ir_version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			run.Seq,
			run.Input,
			run.InputHash,
			run.Status,
			run.ErrorCode,
			run.Message,
			run.ProgramHash,
			run.Procedures,
			run.Implementations,
			run.Cached,
			run.TranslatorVersion,
			run.IRVersion,
		)
		return err
	})
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// SaveOutput stores the printed program for out.InputHash, replacing any
// earlier output for the same hash.
func (s *Store) SaveOutput(ctx context.Context, out Output) error {
	if out.InputHash == "" {
		return fmt.Errorf("save output: input hash is required")
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		seq, err := nextSeq(ctx, tx, "outputs")
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO outputs
			(input_hash, seq, program_hash, procedures, implementations, program)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(input_hash) DO UPDATE SET
				seq = excluded.seq,
				program_hash = excluded.program_hash,
				procedures = excluded.procedures,
				implementations = excluded.implementations,
				program = excluded.program
		`,
			out.InputHash,
			seq,
			out.ProgramHash,
			out.Procedures,
			out.Implementations,
			out.Program,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save output: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
