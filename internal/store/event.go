package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter numbers every appended row, LLM requests and study
// activity alike, from one counter so the two logs interleave correctly.
// The counter lives in the database so a CLI command and a running TUI
// sharing the file never hand out the same number.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

// newSequenceCounter seeds the counter row if this is a fresh database.
func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()

	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next reserves and returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx, err := sc.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin sequence tx: %w", err)
	}

	// Bump first so the write lock is held before the read.
	bump, bumpArgs := entsql.Dialect(dialect.SQLite).
		Update(sequenceTable).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Query()
	var res sql.Result
	if err := tx.Exec(ctx, bump, bumpArgs, &res); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("bump sequence: %w", err)
	}

	read, readArgs := entsql.Dialect(dialect.SQLite).
		Select("next_val").
		From(entsql.Table(sequenceTable)).
		Where(entsql.EQ("id", 1)).
		Query()
	rows := &entsql.Rows{}
	if err := tx.Query(ctx, read, readArgs, rows); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	var next int64
	if rows.Next() {
		err = rows.Scan(&next)
	} else {
		err = rows.Err()
		if err == nil {
			err = sql.ErrNoRows
		}
	}
	rows.Close()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return next - 1, nil
}
