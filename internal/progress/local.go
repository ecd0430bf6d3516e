package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/store"
)

// LocalSource aggregates a snapshot from activity recorded in the local store.
type LocalSource struct {
	activity store.ActivityRepo
}

// NewLocalSource returns a Source backed by activity.
func NewLocalSource(activity store.ActivityRepo) *LocalSource {
	return &LocalSource{activity: activity}
}

func (l *LocalSource) Progress(ctx context.Context, userID string) (Snapshot, error) {
	t, err := l.activity.Totals(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load progress: %w", err)
	}
	return Snapshot{
		TotalNotes:    t.Notes,
		TotalQuizzes:  t.Quizzes,
		TotalAttempts: t.Attempts,
		AverageScore:  t.AverageScore,
		LastActivity:  t.LastActivity,
	}, nil
}
