package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zx06/xacct/internal/config"
	"github.com/zx06/xacct/internal/errors"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr  string
	ConfigStr  string
	ServiceStr string
	Resolved   config.Resolved
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "xacct",
		Short:         "Store accounts in the OS keyring and track the current login",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI > ENV > Config
			formatSet := cmd.Flags().Changed("format")
			serviceSet := cmd.Flags().Changed("service")
			configSet := cmd.Flags().Changed("config")
			if configSet && GlobalConfig.ConfigStr == "" {
				return errors.New(errors.CodeCfgInvalid, "config path is empty", nil)
			}

			r, xe := config.Resolve(config.Options{
				ConfigPath:    GlobalConfig.ConfigStr,
				CLIService:    GlobalConfig.ServiceStr,
				CLIServiceSet: serviceSet,
				CLIFormat:     GlobalConfig.FormatStr,
				CLIFormatSet:  formatSet,
				EnvService:    os.Getenv("XACCT_SERVICE"),
				EnvFormat:     os.Getenv("XACCT_FORMAT"),
				EnvPrefs:      os.Getenv("XACCT_PREFS"),
				EnvLogLevel:   os.Getenv("XACCT_LOG_LEVEL"),
			})
			if xe != nil {
				return xe
			}
			GlobalConfig.Resolved = r
			GlobalConfig.FormatStr = r.Format
			GlobalConfig.ServiceStr = r.Service
			return nil
		},
	}

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./xacct.yaml or $HOME/.config/xacct/xacct.yaml")
	root.PersistentFlags().StringVarP(&GlobalConfig.ServiceStr, "service", "s", "xacct", "Keyring service namespace")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: json|yaml|table|csv|auto")

	return root
}
