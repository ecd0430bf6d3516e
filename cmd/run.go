package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/document"
	"github.com/abhisek/studybuddy/internal/screens/home"
)

func runApp(cmd *cobra.Command, args []string) error {
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

	var doc *document.Document
	dir := saveDir()
	if len(args) == 1 {
		doc, err = e.loadDocument(ctx, svc, args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		if abs, err := filepath.Abs(filepath.Dir(args[0])); err == nil {
			dir = abs
		}
		e.log.Info("document loaded", "name", doc.Name, "words", doc.Words())
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(home.Services{
		Document:   doc,
		Summarizer: svc.summarizer,
		Generator:  svc.generator,
		Answerer:   svc.answerer,
		Identity:   e.identity,
		Progress:   svc.progress,
		Activity:   e.store.ActivityRepo(),
		UserID:     userID,
		SaveDir:    dir,
		ModeLabel:  svc.label,
		Log:        e.log,
	}, !noSplash)
}
