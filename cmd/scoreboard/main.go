// Command scoreboard runs the score and modal stores behind a terminal board.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"
	"github.com/sicko7947/gamestate"
	"github.com/sicko7947/gamestate/internal/config"
	"github.com/sicko7947/gamestate/store"
	"github.com/spf13/cobra"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "scoreboard",
		Short: "Play with the score and modal stores in the terminal",
		Long: `Run a terminal board backed by a fresh session.

Keys:
  space, +   add a point
  -          remove a point
  r          reset the score
  1-4        open the top-left, top-right, bottom-left or bottom-right modal
  esc        close the modal
  q          quit

Configuration is read from SCOREBOARD_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, cfg)
		},
	}

	root.AddCommand(newHistoryCmd(&cfg))
	return root
}

// newLogger builds the file logger. The terminal belongs to the board, so
// without SCOREBOARD_LOG_FILE logs are discarded.
func newLogger(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).
		With().
		Timestamp().
		Logger().
		Level(level)
	return logger, f, nil
}

// openHistory returns the configured backend, or nil when recording is off
func openHistory(ctx context.Context, cfg config.Config) (gamestate.HistoryStore, error) {
	switch cfg.HistoryBackend {
	case config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return store.NewMemoryHistory(), nil
	case config.BackendDynamoDB:
		loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		awsCfg, err := awsconfig.LoadDefaultConfig(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return store.NewDynamoDBHistory(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable), nil
	default:
		return nil, gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown history backend %q", cfg.HistoryBackend))
	}
}
