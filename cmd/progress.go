package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/backend"
	"github.com/abhisek/studybuddy/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show study statistics and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := context.Background()
		svc, err := e.services(ctx)
		if err != nil {
			return err
		}
		userID, err := e.identity.UserID(ctx)
		if err != nil {
			return fmt.Errorf("load learner id: %w", err)
		}

		snap, err := svc.progress.Progress(ctx, userID)
		if err != nil {
			if backend.IsStatus(err, http.StatusNotFound) {
				fmt.Println("No activity recorded yet.")
				return nil
			}
			return err
		}
		printReport(progress.Evaluate(snap))
		return nil
	},
}

func printReport(r progress.Report) {
	s := r.Snapshot
	sep := strings.Repeat("─", 44)

	fmt.Println("Study Statistics")
	fmt.Println(sep)
	fmt.Printf("%-16s %d\n", "Notes", s.TotalNotes)
	fmt.Printf("%-16s %d\n", "Quizzes", s.TotalQuizzes)
	fmt.Printf("%-16s %d\n", "Attempts", s.TotalAttempts)
	if s.LastActivity != nil {
		fmt.Printf("%-16s %s\n", "Last activity", s.LastActivity.Local().Format(time.DateTime))
	}
	if r.HasAttempts {
		fmt.Printf("%-16s %.1f%% (%s)\n", "Average score", s.AverageScore, r.Tier.DisplayName())
	} else {
		fmt.Println("Complete a quiz to see your average score.")
	}

	fmt.Println()
	fmt.Println("Achievements")
	fmt.Println(sep)
	for _, a := range progress.AllAchievements() {
		status := "locked"
		if r.IsUnlocked(a) {
			status = "unlocked"
		}
		fmt.Printf("%s %-16s %-9s %s\n", a.Icon(), a.DisplayName(), status, a.Description())
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the study-buddy backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := backend.New(backend.Options{
			BaseURL: cfg.Backend.URL,
			Timeout: cfg.Backend.Timeout,
		})

		status, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s: %w", client.BaseURL(), err)
		}
		fmt.Printf("%s: %s\n", client.BaseURL(), status.Status)
		return nil
	},
}
