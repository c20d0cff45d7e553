package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/xacct/internal/app"
	"github.com/zx06/xacct/internal/output"
)

// NewLoginCommand creates the login command
func NewLoginCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "login <id>",
		Short: "Mark an account as the current account",
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
			store.Login(c)
			return w.WriteOK(format, c.View(true))
		},
	}
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current account",
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
			store.Logout()
			return w.WriteOK(format, map[string]any{"service": GlobalConfig.Resolved.Service, "logged_out": true})
		},
	}
}

// WhoamiResult is the whoami payload; Account is nil when nobody is logged in
type WhoamiResult struct {
	Service string              `json:"service" yaml:"service"`
	Account *app.CredentialView `json:"account" yaml:"account"`
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
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
			accounts, err := store.Accounts()
			if err != nil {
				return err
			}
			res := WhoamiResult{Service: GlobalConfig.Resolved.Service}
			cur, ok, err := store.CurrentAccount(accounts)
			if err != nil {
				return err
			}
			if ok {
				v := cur.View(true)
				res.Account = &v
			}
			return w.WriteOK(format, res)
		},
	}
}
