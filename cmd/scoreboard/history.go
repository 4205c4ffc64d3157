package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sicko7947/gamestate"
	"github.com/sicko7947/gamestate/internal/config"
	"github.com/spf13/cobra"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var (
		kind  string
		limit int
		purge bool
	)

	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show or delete the recorded history of a session",
		Long: `Print the store mutations recorded for a past session.

Requires SCOREBOARD_HISTORY_BACKEND=dynamodb; the memory backend does not
outlive the session that wrote it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.HistoryBackend != config.BackendDynamoDB {
				return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig,
					"history command requires the dynamodb backend")
			}

			history, err := openHistory(cmd.Context(), *cfg)
			if err != nil {
				return err
			}

			sessionID := args[0]
			if purge {
				if err := history.DeleteSession(cmd.Context(), sessionID); err != nil {
					return fmt.Errorf("delete history: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted history for session %s\n", sessionID)
				return nil
			}

			filter := gamestate.HistoryFilter{Kind: gamestate.EntryKind(kind), Limit: limit}
			entries, err := history.List(cmd.Context(), sessionID, filter)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			return printHistory(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only show entries of this kind (score or modal)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries to show")
	cmd.Flags().BoolVar(&purge, "delete", false, "delete the session's history instead of printing it")

	return cmd
}

func printHistory(w io.Writer, entries []*gamestate.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No history recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tKIND\tVALUE\tRECORDED")
	for _, entry := range entries {
		value := fmt.Sprintf("%d", entry.Score)
		if entry.Kind == gamestate.EntryKindModal {
			value = entry.Corner.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", entry.Seq, entry.Kind, value, entry.RecordedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
