package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Clear the stored display name, the local activity history, or both (the default).",
	RunE: func(cmd *cobra.Command, args []string) error {
		clearIdentity, _ := cmd.Flags().GetBool("identity")
		clearActivity, _ := cmd.Flags().GetBool("activity")
		if !clearIdentity && !clearActivity {
			clearIdentity, clearActivity = true, true
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := context.Background()
		if clearActivity {
			userID, err := e.identity.UserID(ctx)
			if err != nil {
				return fmt.Errorf("load learner id: %w", err)
			}
			if err := e.store.ActivityRepo().Clear(ctx, userID); err != nil {
				return fmt.Errorf("clear activity: %w", err)
			}
			fmt.Println("Activity history cleared.")
		}
		if clearIdentity {
			if err := e.identity.ClearName(ctx); err != nil {
				return fmt.Errorf("clear name: %w", err)
			}
			fmt.Println("Display name cleared. You will be asked for it in the next chat.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("identity", false, "Clear only the stored display name")
	resetCmd.Flags().Bool("activity", false, "Clear only the local activity history")
}
