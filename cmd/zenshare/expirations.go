package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zenmark/zenshare"
)

func newExpirationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expirations",
		Short: "List the accepted expiration tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.cfg.Stdout, 0, 0, 2, ' ', 0)
			for _, opt := range zenshare.Expirations() {
				marker := ""
				if string(opt.Value) == a.settings.Expire {
					marker = color.New(color.FgGreen).Sprint("(default)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", opt.Value, opt.Label, marker)
			}
			return w.Flush()
		},
	}
}
