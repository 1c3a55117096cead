package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"progdoc/internal/conference"
	"progdoc/internal/config"
	"progdoc/internal/document"
)

func newConferencesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var selectOne bool

	cmd := &cobra.Command{
		Use:   "conferences",
		Short: "List conferences in the extracted document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			doc, err := document.Load(cfg.DocumentPath())
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("no document at %s; run `progdoc extract` first", cfg.DocumentPath())
				}
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd, doc.Conferences); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), renderConferenceTable(doc.Conferences))
			}

			if !selectOne {
				return nil
			}
			chosen, err := selectConference(cmd, doc.Conferences)
			if err != nil {
				return err
			}
			return prepareConferenceDir(cmd, cfg, chosen)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print conferences as JSON")
	cmd.Flags().BoolVar(&selectOne, "select", false, "Choose a conference and create its document folder")
	return cmd
}

func renderConferenceTable(conferences []conference.Conference) string {
	headers := []string{"ID", "Title", "Dates", "Venue", "Sessions"}
	rows := make([][]string, 0, len(conferences))
	for _, conf := range conferences {
		dates := conf.StartDate
		if conf.EndDate != conf.StartDate {
			dates += " – " + conf.EndDate
		}
		rows = append(rows, []string{
			strconv.FormatInt(conf.ID, 10),
			conf.Title,
			dates,
			conf.VenueName,
			strconv.Itoa(len(conf.Sessions)),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}
	return renderTable(headers, rows, aligns)
}

// selectConference mirrors the selection flow the document generators expect:
// a single conference is chosen automatically, several require a terminal.
func selectConference(cmd *cobra.Command, conferences []conference.Conference) (*conference.Conference, error) {
	out := cmd.OutOrStdout()
	switch len(conferences) {
	case 0:
		return nil, errors.New("document contains no conferences")
	case 1:
		fmt.Fprintf(out, "Found one conference: %s\n", conferences[0].Title)
		return &conferences[0], nil
	}

	if !stdinIsTerminal() {
		return nil, errors.New("selecting among multiple conferences requires an interactive terminal")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprintf(out, "Enter the conference number (1-%d): ", len(conferences))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read selection: %w", err)
			}
			return nil, errors.New("input closed before a conference was chosen")
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(conferences) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(conferences))
			continue
		}
		return &conferences[choice-1], nil
	}
}

// prepareConferenceDir creates the per-conference folder the document
// generators write their reports into.
func prepareConferenceDir(cmd *cobra.Command, cfg *config.Config, conf *conference.Conference) error {
	folder := strings.ReplaceAll(conf.Title, string(os.PathSeparator), "_")
	dir := filepath.Join(cfg.Paths.OutputDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create conference folder %q: %w", dir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created document folder: %s\n", dir)
	return nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
