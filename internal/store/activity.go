package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// activityRepo implements ActivityRepo over the activity_events table.
type activityRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *activityRepo) RecordNote(ctx context.Context, userID, document string) error {
	return r.append(ctx, userID, ActivityNote, document, 0, 0)
}

func (r *activityRepo) RecordQuiz(ctx context.Context, userID, document string, questions int) error {
	return r.append(ctx, userID, ActivityQuiz, document, 0, questions)
}

func (r *activityRepo) RecordAttempt(ctx context.Context, userID, attemptID string, percent, total int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("attempt score %d out of range", percent)
	}
	return r.append(ctx, userID, ActivityAttempt, attemptID, percent, total)
}

func (r *activityRepo) append(ctx context.Context, userID string, kind ActivityKind, ref string, score, total int) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(activityTable).
		Columns("sequence", "timestamp", "user_id", "kind", "ref", "score", "total").
		Values(seqNum, time.Now().UTC(), userID, string(kind), ref, score, total).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save %s activity: %w", kind, err)
	}
	return nil
}

func (r *activityRepo) Totals(ctx context.Context, userID string) (ActivityTotals, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"kind",
			entsql.As(entsql.Count("*"), "n"),
			entsql.As(entsql.Avg("score"), "avg_score"),
			entsql.As(entsql.Max("timestamp"), "last_at"),
		).
		From(entsql.Table(activityTable)).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("kind").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return ActivityTotals{}, fmt.Errorf("query activity totals: %w", err)
	}
	defer rows.Close()

	var totals ActivityTotals
	for rows.Next() {
		var (
			kind   string
			n      int
			avg    sql.NullFloat64
			lastAt sql.NullString
		)
		if err := rows.Scan(&kind, &n, &avg, &lastAt); err != nil {
			return ActivityTotals{}, fmt.Errorf("scan activity totals: %w", err)
		}

		switch ActivityKind(kind) {
		case ActivityNote:
			totals.Notes = n
		case ActivityQuiz:
			totals.Quizzes = n
		case ActivityAttempt:
			totals.Attempts = n
			totals.AverageScore = avg.Float64
		}

		if t, ok := parseTimestamp(lastAt); ok {
			if totals.LastActivity == nil || t.After(*totals.LastActivity) {
				totals.LastActivity = &t
			}
		}
	}
	return totals, rows.Err()
}

func (r *activityRepo) Clear(ctx context.Context, userID string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(activityTable).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("clear activity: %w", err)
	}
	return nil
}

// timestampLayouts are the forms SQLite hands back for MAX() over a
// datetime column, which loses the column affinity.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

func parseTimestamp(s sql.NullString) (time.Time, bool) {
	if !s.Valid || s.String == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
