package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zx06/xacct/internal/app"
	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/output"
)

// AccountAddFlags holds the flags for account add
type AccountAddFlags struct {
	ID          string
	Username    string
	Server      string
	Label       string
	SecretStdin bool
}

// NewAccountCommand creates the account command group
func NewAccountCommand(w *output.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage saved accounts",
	}
	cmd.AddCommand(newAccountAddCommand(w))
	cmd.AddCommand(newAccountListCommand(w))
	cmd.AddCommand(newAccountShowCommand(w))
	cmd.AddCommand(newAccountRemoveCommand(w))
	return cmd
}

func newAccountAddCommand(w *output.Writer) *cobra.Command {
	flags := &AccountAddFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save an account (replaces an existing account with the same id)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountAdd(cmd, flags, w)
		},
	}
	cmd.Flags().StringVar(&flags.ID, "id", "", "Account id (default: random UUID)")
	cmd.Flags().StringVar(&flags.Username, "username", "", "Account username")
	cmd.Flags().StringVar(&flags.Server, "server", "", "Server or URL the account belongs to")
	cmd.Flags().StringVar(&flags.Label, "label", "", "Free-form label")
	cmd.Flags().BoolVar(&flags.SecretStdin, "secret-stdin", false, "Read the secret from stdin instead of prompting")
	return cmd
}

func runAccountAdd(cmd *cobra.Command, flags *AccountAddFlags, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}
	if flags.Username == "" {
		return errors.New(errors.CodeCfgInvalid, "username is required", nil)
	}
	secret, err := readSecret(cmd, flags.SecretStdin)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	c := app.NewCredential(flags.ID, flags.Username, secret, flags.Server, flags.Label, time.Now())
	if err := store.SaveAccount(c); err != nil {
		return err
	}
	return w.WriteOK(format, c.View(false))
}

func newAccountListCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			list, xe := app.ListView(store, GlobalConfig.Resolved.Service)
			if xe != nil {
				return xe
			}
			return w.WriteOK(format, list)
		},
	}
}

func newAccountShowCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account (secret redacted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			accounts, err := store.Accounts()
			if err != nil {
				return err
			}
			c, xe := app.Lookup(accounts, args[0])
			if xe != nil {
				return xe
			}
			cur, ok, _ := store.CurrentAccount(accounts)
			return w.WriteOK(format, c.View(ok && cur.ID == c.ID))
		},
	}
}

func newAccountRemoveCommand(w *output.Writer) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove one account, or every account in the namespace with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			if all == (len(args) == 1) {
				return errors.New(errors.CodeCfgInvalid, "specify exactly one of <id> or --all", nil)
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			service := GlobalConfig.Resolved.Service
			if all {
				if err := store.RemoveAccounts(); err != nil {
					return err
				}
				return w.WriteOK(format, map[string]any{"service": service, "removed_all": true})
			}
			if err := store.RemoveAccount(app.Credential{ID: args[0]}); err != nil {
				return err
			}
			return w.WriteOK(format, map[string]any{"service": service, "removed": args[0]})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Remove all accounts in the namespace")
	return cmd
}
