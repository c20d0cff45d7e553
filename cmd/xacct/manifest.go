package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/xacct/internal/app"
	"github.com/zx06/xacct/internal/output"
)

// NewManifestCommand creates the manifest command for AI/agent discovery
func NewManifestCommand(a *app.App, w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Export tool manifest (for AI/agents)",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			return w.WriteOK(format, a.BuildManifest())
		},
	}
}
