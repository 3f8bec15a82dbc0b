package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenmark/zenshare"
)

// noteOutput is the --json form of an opened note.
type noteOutput struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Format    string     `json:"format"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newOpenCmd(a *app) *cobra.Command {
	var (
		password string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "open <share-url>",
		Short: "Download and decrypt a shared note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return a.userError(err)
			}

			var opts []zenshare.FetchOption
			if password != "" {
				opts = append(opts, zenshare.WithFetchPassword(password))
			}

			note, err := client.ResolveShareLink(cmd.Context(), args[0], opts...)
			if err != nil {
				return a.userError(err)
			}
			if note.TimeToLive > 0 {
				a.logger.Infof("Note expires in %s", note.TimeToLive.Round(time.Second))
			}

			if asJSON {
				out := noteOutput{Title: note.Title, Content: note.Content, Format: string(note.Format)}
				if !note.ExpiresAt.IsZero() {
					out.ExpiresAt = &note.ExpiresAt
				}
				enc := json.NewEncoder(a.cfg.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprintf(a.cfg.Stdout, "# %s\n\n%s", note.Title, note.Content)
			if note.Content != "" && note.Content[len(note.Content)-1] != '\n' {
				fmt.Fprintln(a.cfg.Stdout)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password of a protected link")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the note as JSON")
	return cmd
}
