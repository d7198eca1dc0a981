package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sbilibin2017/gw-library-ledger/internal/app"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
)

func newRegisterCmd(opts *options) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.username == "" {
				return errors.New("--user is required")
			}
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				password, err := readPassword(cmd, "New password: ")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				auth := services.NewAuthService(store.Accounts, nil, nil)
				if err := auth.Register(ctx, opts.username, password, role); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", opts.username)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", string(models.RoleUser), "account role: Admin or User")
	return cmd
}

func newAddBookCmd(opts *options) *cobra.Command {
	var title, author, year, genre string

	cmd := &cobra.Command{
		Use:   "add-book",
		Short: "Add a copy of a book to the catalog (Admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				account, err := login(cmd, opts, store)
				if err != nil {
					return err
				}
				if account.Role != models.RoleAdmin {
					return errAdminRequired
				}

				id, err := store.Ledger(nil).AddBook(ctx, title, author, year, genre)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", strings.TrimSpace(title), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&year, "year", "", "publication year")
	cmd.Flags().StringVar(&genre, "genre", "", "genre")
	return cmd
}

func newBorrowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow TITLE",
		Short: "Borrow an available copy of TITLE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				account, err := login(cmd, opts, store)
				if err != nil {
					return err
				}

				loanID, err := store.Ledger(nil).BorrowBook(ctx, args[0], account.Username)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Borrowed %q (loan %s)\n", args[0], loanID)
				return nil
			})
		},
	}
}

func newReturnCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "return TITLE",
		Short: "Return a borrowed copy of TITLE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				account, err := login(cmd, opts, store)
				if err != nil {
					return err
				}

				ledger := store.Ledger(nil)
				err = ledger.ReturnBook(ctx, args[0], account.Username)
				if errors.Is(err, services.ErrNoActiveLoan) {
					titles, listErr := ledger.ActiveLoanTitles(ctx, account.Username)
					if listErr == nil {
						printTitles(cmd, titles)
					}
					return err
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Returned %q\n", args[0])
				return nil
			})
		},
	}
}

func newBooksCmd(opts *options) *cobra.Command {
	var filter models.BookFilter

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tGENRE\tAVAILABLE")
				for b, err := range store.Ledger(nil).ListBooks(ctx, filter) {
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						b.ID, b.Title, b.Author, b.Year, b.Genre, strconv.FormatBool(b.Available))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&filter.AvailableOnly, "available", false, "only books that can be borrowed")
	cmd.Flags().StringVar(&filter.TitleContains, "q", "", "title substring")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var filter models.HistoryFilter

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show borrow and return history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "DATE\tUSER\tACTION\tTITLE")
				for e, err := range store.Ledger(nil).ListHistory(ctx, filter) {
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.DisplayDate(), e.Username, e.Action, e.BookTitle)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&filter.Username, "username", "", "only entries of this user")
	return cmd
}

func newLoansCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "loans",
		Short: "List the titles --user currently holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.username == "" {
				return errors.New("--user is required")
			}
			return withStore(cmd, opts, func(ctx context.Context, store *app.Store) error {
				titles, err := store.Ledger(nil).ActiveLoanTitles(ctx, opts.username)
				if err != nil {
					return err
				}
				printTitles(cmd, titles)
				return nil
			})
		},
	}
}

func printTitles(cmd *cobra.Command, titles []string) {
	if len(titles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No borrowed books")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Borrowed books:")
	for _, t := range titles {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", t)
	}
}
