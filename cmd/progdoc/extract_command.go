package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"progdoc/internal/document"
	"progdoc/internal/extract"
	"progdoc/internal/logging"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract conference data from the source database into the document artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			log := logger.With("run_id", uuid.NewString())

			// One extraction at a time per output directory; the document is
			// renamed into place and concurrent runs would race on it.
			lock := flock.New(filepath.Join(cfg.Paths.OutputDir, ".extract.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire extraction lock: %w", err)
			}
			if !locked {
				return errors.New("another extraction is already running for this output directory")
			}
			defer lock.Unlock()

			store, err := extract.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			log.Info("extraction started", "database", cfg.Paths.Database)
			doc, err := store.Extract(cmd.Context(), log)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			path := cfg.DocumentPath()
			if err := document.Write(path, doc); err != nil {
				return err
			}
			log.Info("document written", "path", path, "conferences", len(doc.Conferences))

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d conferences)\n", path, len(doc.Conferences))
			return nil
		},
	}
}
