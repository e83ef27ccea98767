package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch DATA OUTPUT",
	Short: "Regenerate the PDF whenever the data or config file changes",
	Long: `Generates OUTPUT once, then again each time DATA, the config file or the
profile picture is saved. Stops on Ctrl-C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

var watchFlags renderFlags

func init() {
	watchFlags.register(watchCmd)

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dataPath, outputPath := args[0], args[1]
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := []string{dataPath, watchFlags.configPath, watchFlags.profilePicture}
	w, err := watch.New(watch.Options{
		Paths:  paths,
		Logger: log(),
		OnError: func(err error) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		},
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", dataPath)
	return w.Run(ctx, func(ctx context.Context) error {
		// Re-read settings so config file edits apply
		cfg, err := watchFlags.resolve(cmd)
		if err != nil {
			return err
		}
		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		result, err := gen.CreateCV(ctx, newRequest(cfg, dataPath, outputPath))
		if err != nil {
			return err
		}
		log().Info("regenerated", zap.String("output", result.OutputPath), zap.Int("pages", result.Pages))
		_, _ = fmt.Fprintf(out, "✓ CV generated: %s (%d pages)\n", result.OutputPath, result.Pages)
		return nil
	})
}
