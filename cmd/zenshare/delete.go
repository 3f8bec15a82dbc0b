package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenmark/zenshare"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <paste-id|share-url> <delete-token>",
		Short: "Delete a shared note before it expires",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pasteID := args[0]
			if params, err := zenshare.ParseShareURL(pasteID); err == nil {
				pasteID = params.PasteID
			}

			client, err := a.newClient()
			if err != nil {
				return a.userError(err)
			}
			if err := client.DeleteShareLink(cmd.Context(), pasteID, args[1]); err != nil {
				return a.userError(err)
			}

			fmt.Fprintf(a.cfg.Stdout, "Deleted %s\n", pasteID)
			return nil
		},
	}
}
