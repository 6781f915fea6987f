package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doughepi/grain/core/logger"
	"github.com/doughepi/grain/feature/directory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchRecursive  bool
	watchExtensions []string
	watchDebounce   time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Keep a directory in sync",
	Long: `Syncs the directory once, then watches it and re-syncs after files change.
A burst of changes results in a single pass once the directory has been quiet for
the debounce interval.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, logg, err := setup(processFlags.quiet)
		if err != nil {
			return err
		}
		defer logg.Sync()
		applyProcessFlags(cmd, cfg)

		src := directory.New(args[0], directory.Options{Recursive: watchRecursive, Extensions: watchExtensions},
			logger.WithSource(logg, directory.SourceName))

		engine, _, release, err := newEngine(ctx, cfg, logg, openHistory(ctx, cfg, logg), processFlags.quiet, processFlags.verbose)
		if err != nil {
			return err
		}
		defer release()

		opts := engine.DefaultPassOptions()
		opts.Cleanup = !processFlags.keepPayloads

		runPass := func(ctx context.Context) {
			result, err := engine.Sync(ctx, src, opts)
			if err != nil {
				logg.Error("Sync failed", zap.Error(err))
				return
			}
			if err := result.Err(); err != nil {
				logg.Warn("Sync finished with failures", zap.Int("failed", result.Failed), zap.Error(err))
			}
		}

		runPass(ctx)
		logg.Info("Watching for changes", zap.String("dir", args[0]), zap.Duration("debounce", watchDebounce))
		return src.Watch(ctx, watchDebounce, runPass)
	},
}

func init() {
	flags := watchCmd.Flags()
	flags.BoolVarP(&watchRecursive, "recursive", "r", false, "include subdirectories")
	flags.StringSliceVar(&watchExtensions, "extensions", directory.DefaultExtensions, "file extensions to include")
	flags.DurationVar(&watchDebounce, "debounce", directory.DefaultDebounce, "quiet period before a re-sync")
	addSyncFlags(flags)

	RootCmd.AddCommand(watchCmd)
}
