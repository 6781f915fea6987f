package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/doughepi/grain/core/config"
	"github.com/doughepi/grain/core/ingest"
	"github.com/doughepi/grain/core/logger"
	"github.com/doughepi/grain/core/remote"
	"github.com/doughepi/grain/feature/directory"
	"github.com/doughepi/grain/feature/history"
	"github.com/doughepi/grain/feature/imap"
	"github.com/doughepi/grain/feature/messages"
	"github.com/doughepi/grain/feature/notes"
	"github.com/doughepi/grain/feature/progress"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// processFlags are shared by every process subcommand.
var processFlags struct {
	batchSize    int
	pace         time.Duration
	noWait       bool
	keepPayloads bool
	quiet        bool
	verbose      bool
}

var (
	dirRecursive  bool
	dirExtensions []string

	messagesDBPath string

	imapEmail     string
	imapPassword  string
	imapServer    string
	imapMailbox   string
	imapPlaintext bool
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Sync a data source to the ingestion service",
	Long: `Runs one sync pass: the source is read, every item gets a stable document ID,
and only new or changed items are sent. Documents still being processed remotely are
waited for before they are updated.`,
}

var processDirectoryCmd = &cobra.Command{
	Use:   "directory <dir>",
	Short: "Sync the files of a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, directory.SourceName, func(logg *zap.Logger) ingest.Source {
			return directory.New(args[0], directory.Options{Recursive: dirRecursive, Extensions: dirExtensions}, logg)
		})
	},
}

var processMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Sync conversations from the Messages database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, messages.SourceName, func(logg *zap.Logger) ingest.Source {
			return messages.New(messagesDBPath, logg)
		})
	},
}

var processNotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Sync notes from the Notes application",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, notes.SourceName, func(logg *zap.Logger) ingest.Source {
			return notes.New(nil, logg)
		})
	},
}

var processIMAPCmd = &cobra.Command{
	Use:   "imap",
	Short: "Sync email from an IMAP mailbox",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if imapEmail == "" || imapPassword == "" {
			return errors.WithHint(errors.New("--email and --password are required"),
				"use an app-specific password for iCloud and Gmail accounts")
		}
		return runProcess(cmd, imap.SourceName, func(logg *zap.Logger) ingest.Source {
			return imap.New(imapOptions(), logg)
		})
	},
}

func imapOptions() imap.Options {
	return imap.Options{
		Server:    imapServer,
		Email:     imapEmail,
		Password:  imapPassword,
		Mailbox:   imapMailbox,
		Plaintext: imapPlaintext,
	}
}

func runProcess(cmd *cobra.Command, name string, newSource func(*zap.Logger) ingest.Source) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logg, err := setup(processFlags.quiet)
	if err != nil {
		return err
	}
	defer logg.Sync()
	applyProcessFlags(cmd, cfg)

	src := newSource(logger.WithSource(logg, name))
	engine, _, release, err := newEngine(ctx, cfg, logg, openHistory(ctx, cfg, logg), processFlags.quiet, processFlags.verbose)
	if err != nil {
		return err
	}
	defer release()

	opts := engine.DefaultPassOptions()
	opts.Cleanup = !processFlags.keepPayloads

	result, err := engine.Sync(ctx, src, opts)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return errors.Wrapf(err, "%d of %d items failed", result.Failed, result.Staged)
	}
	return nil
}

// applyProcessFlags overrides configured sync settings with flags that were set.
func applyProcessFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("batch-size") {
		cfg.Sync.BatchSize = processFlags.batchSize
	}
	if flags.Changed("pace") {
		cfg.Sync.PaceMillis = int(processFlags.pace / time.Millisecond)
	}
	if processFlags.noWait {
		cfg.Sync.WaitOnProcessing = false
	}
}

// newEngine wires the payload store, remote client, progress display and history
// recorder into an engine. repo may be nil. The remote client is returned for callers
// that query the service directly. release must be called once the engine is done.
func newEngine(ctx context.Context, cfg *config.Config, logg *zap.Logger, repo *history.Repository, quiet, verbose bool) (*ingest.Engine, remote.Client, func(), error) {
	store, release, err := openPayloadStore(ctx, cfg, logg)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := connectRemote(ctx, cfg, store, logg)
	if err != nil {
		release()
		return nil, nil, nil, err
	}

	observers := ingest.MultiObserver{}
	if !quiet {
		observers = append(observers, progress.NewTerminal(os.Stdout, verbose))
	}
	if repo != nil {
		observers = append(observers, history.NewRecorder(repo, logg))
	}

	engine, err := ingest.NewEngine(client, store, cfg.Sync,
		ingest.WithLogger(logg),
		ingest.WithObserver(observers),
	)
	if err != nil {
		release()
		return nil, nil, nil, err
	}
	return engine, client, release, nil
}

// addSyncFlags registers the flags that tune a pass.
func addSyncFlags(flags *pflag.FlagSet) {
	flags.IntVar(&processFlags.batchSize, "batch-size", 1, "maximum number of items per remote call (overrides sync.batch_size)")
	flags.DurationVar(&processFlags.pace, "pace", 200*time.Millisecond, "minimum delay between remote calls (overrides sync.pace_ms)")
	flags.BoolVar(&processFlags.noWait, "no-wait", false, "update documents that are still processing right away instead of waiting")
	flags.BoolVar(&processFlags.keepPayloads, "keep-payloads", false, "do not remove transient payloads after the pass")
	flags.BoolVarP(&processFlags.quiet, "quiet", "q", false, "only log warnings and hide progress")
	flags.BoolVarP(&processFlags.verbose, "verbose", "v", false, "print every item as it is sent")
}

func defaultMessagesDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "chat.db"
	}
	return filepath.Join(home, "Library", "Messages", "chat.db")
}

func init() {
	addSyncFlags(processCmd.PersistentFlags())

	processDirectoryCmd.Flags().BoolVarP(&dirRecursive, "recursive", "r", false, "include subdirectories")
	processDirectoryCmd.Flags().StringSliceVar(&dirExtensions, "extensions", directory.DefaultExtensions, "file extensions to include")

	processMessagesCmd.Flags().StringVar(&messagesDBPath, "db-path", defaultMessagesDB(), "path to the Messages chat.db")

	processIMAPCmd.Flags().StringVar(&imapEmail, "email", "", "mailbox login")
	processIMAPCmd.Flags().StringVar(&imapPassword, "password", "", "mailbox password")
	processIMAPCmd.Flags().StringVar(&imapServer, "imap-server", "imap.mail.me.com", "IMAP server, host or host:port")
	processIMAPCmd.Flags().StringVar(&imapMailbox, "mailbox", "INBOX", "mailbox to sync")
	processIMAPCmd.Flags().BoolVar(&imapPlaintext, "plaintext", false, "connect without TLS (default port 143)")

	processCmd.AddCommand(processDirectoryCmd, processMessagesCmd, processNotesCmd, processIMAPCmd)
	RootCmd.AddCommand(processCmd)
}
