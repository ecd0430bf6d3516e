package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Known setting names.
const (
	SettingUserID      = "user_id"
	SettingDisplayName = "display_name"
)

// settingsRepo implements SettingsRepo over the settings table.
type settingsRepo struct {
	drv *entsql.Driver
}

func (r *settingsRepo) Get(ctx context.Context, name string) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ("name", name)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan setting %q: %w", name, err)
	}
	return value, true, nil
}

func (r *settingsRepo) SetOnce(ctx context.Context, name, value string) (bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(settingsTable).
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("name"), entsql.DoNothing()).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return false, fmt.Errorf("set setting %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set setting %q: %w", name, err)
	}
	return n == 1, nil
}

func (r *settingsRepo) Delete(ctx context.Context, name string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(settingsTable).
		Where(entsql.EQ("name", name)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete setting %q: %w", name, err)
	}
	return nil
}
