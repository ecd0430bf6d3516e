package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Print a summary of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styleFlag, _ := cmd.Flags().GetString("style")
		style, err := summary.ParseStyle(styleFlag)
		if err != nil {
			return err
		}
		save, _ := cmd.Flags().GetBool("save")

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
		doc, err := e.loadDocument(ctx, svc, args[0])
		if err != nil {
			return err
		}

		sess := summary.NewSession(svc.summarizer, doc.Name, doc.Text, e.log)
		if err := sess.SetStyle(style); err != nil {
			return err
		}
		if err := sess.Summarize(ctx); err != nil {
			return err
		}

		text, _ := sess.Text()
		fmt.Println(text)

		if save {
			path, err := sess.Save(saveDir())
			if err != nil {
				return err
			}
			fmt.Printf("\nSaved to %s\n", path)
		}
		return nil
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <file>",
	Short: "Generate quiz questions for a document and print them with answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		typeFlag, _ := cmd.Flags().GetString("type")
		filter, err := quiz.ParseFilter(typeFlag)
		if err != nil {
			return err
		}

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
		doc, err := e.loadDocument(ctx, svc, args[0])
		if err != nil {
			return err
		}

		sess := quiz.NewSession(svc.generator, doc.Text, e.log)
		if err := sess.SetCount(count); err != nil {
			return err
		}
		if err := sess.SetFilter(filter); err != nil {
			return err
		}
		if err := sess.Generate(ctx); err != nil {
			return err
		}

		questions := sess.Attempt().Questions()
		if userID, err := e.identity.UserID(ctx); err == nil {
			if err := e.store.ActivityRepo().RecordQuiz(ctx, userID, doc.Name, len(questions)); err != nil {
				e.log.Warn("recording quiz failed", "error", err)
			}
		}

		printQuestions(questions)
		return nil
	},
}

func printQuestions(questions []quiz.Question) {
	for i, q := range questions {
		fmt.Printf("%d. %s\n", i+1, q.Prompt)
		for j, c := range q.Choices() {
			mark := " "
			if c == q.CorrectAnswer {
				mark = "*"
			}
			fmt.Printf("   %s %c) %s\n", mark, 'A'+j, c)
		}
		fmt.Println()
	}
	fmt.Println("* marks the correct answer")
}

var askCmd = &cobra.Command{
	Use:   "ask <file> <question>",
	Short: "Ask one question about a document",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args[1:], " "))
		if question == "" {
			return fmt.Errorf("question must not be empty")
		}

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
		doc, err := e.loadDocument(ctx, svc, args[0])
		if err != nil {
			return err
		}

		reply, err := svc.answerer.Answer(llm.WithPurpose(ctx, llm.PurposeChatAnswer), question, doc.Text)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(reply))
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringP("style", "s", string(summary.StyleConcise), "Summary style: concise, detailed or bullet_points")
	summarizeCmd.Flags().Bool("save", false, "Also write <file>_summary.txt to the working directory")

	quizCmd.Flags().IntP("count", "n", quiz.DefaultQuestions, fmt.Sprintf("Number of questions (%d-%d)", quiz.MinQuestions, quiz.MaxQuestions))
	quizCmd.Flags().StringP("type", "t", string(quiz.FilterMixed), "Question type: mcq, true_false or mixed")
}
