package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy [file]",
	Short: "AI study companion for your notes",
	Long: "Study Buddy: load a .txt, .pdf or .docx file, then summarize it, quiz yourself\n" +
		"on it and chat about it from the terminal.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STUDYBUDDY_DB_PATH)")
	pf.String("mode", "", "Service mode: remote (study-buddy backend) or llm (direct provider)")
	pf.String("config", "", "Path to a studybuddy.yaml config file")
	pf.String("env-file", "", "Path to a dotenv file (default .env)")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
