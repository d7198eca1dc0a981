// Command librarian is a terminal client for the loan ledger. It talks to the store
// directly, so it is meant for a single desk or for administration.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sbilibin2017/gw-library-ledger/internal/app"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
)

// readPassword reads a password without echoing it.
var readPassword = func(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	return strings.TrimSpace(string(bytePassword)), nil
}

var errAdminRequired = errors.New("admin role required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	store    app.StoreConfig
	username string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "librarian",
		Short:        "Manage books, loans and history of the library",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(opts.logLevel, "console")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.store.Driver, "driver", app.DriverSQLite, "store driver: sqlite, postgres or mongo")
	flags.StringVar(&opts.store.SQLitePath, "sqlite-path", "library.db", "SQLite database file")
	flags.StringVar(&opts.store.PostgresDSN, "postgres-dsn", "", "PostgreSQL connection string")
	flags.StringVar(&opts.store.MongoURI, "mongo-uri", "mongodb://localhost:27017/?replicaSet=rs0", "MongoDB connection string")
	flags.StringVar(&opts.store.MongoDB, "mongo-db", "Library", "MongoDB database name")
	flags.StringVarP(&opts.username, "user", "u", "", "account username")
	flags.StringVar(&opts.logLevel, "log-level", "error", "log level")
	opts.store.MaxOpenConns = 4
	opts.store.MaxIdleConns = 2

	root.AddCommand(
		newRegisterCmd(opts),
		newAddBookCmd(opts),
		newBorrowCmd(opts),
		newReturnCmd(opts),
		newBooksCmd(opts),
		newHistoryCmd(opts),
		newLoansCmd(opts),
	)
	return root
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, opts *options, fn func(ctx context.Context, store *app.Store) error) error {
	ctx := cmd.Context()
	store, err := app.OpenStore(ctx, opts.store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close(context.Background())

	return fn(ctx, store)
}

// login asks for the password of --user and checks it.
func login(cmd *cobra.Command, opts *options, store *app.Store) (*models.Account, error) {
	if opts.username == "" {
		return nil, errors.New("--user is required")
	}
	password, err := readPassword(cmd, fmt.Sprintf("Password for %s: ", opts.username))
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return services.NewAuthService(store.Accounts, nil, nil).Authenticate(cmd.Context(), opts.username, password)
}
