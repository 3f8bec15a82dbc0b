package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zenmark/zenshare"
)

type shareFlags struct {
	title    string
	format   string
	password string
	asJSON   bool
}

// shareOutput is the --json form of a created link.
type shareOutput struct {
	URL               string `json:"url"`
	PasteID           string `json:"paste_id"`
	DeleteToken       string `json:"delete_token"`
	Expiration        string `json:"expiration"`
	PasswordProtected bool   `json:"password_protected"`
}

func newShareCmd(a *app) *cobra.Command {
	var f shareFlags

	cmd := &cobra.Command{
		Use:   "share [file]",
		Short: "Encrypt a note and print its share link",
		Long: `Reads the note from file, or from stdin when file is omitted or "-",
encrypts it and uploads the ciphertext. The printed link is the only way to
open the note again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			content, err := readNote(path, a.cfg.Stdin)
			if err != nil {
				return err
			}

			title := f.title
			if title == "" && path != "-" {
				title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			p := newProgress(a.cfg.Stderr, a.cfg.Interactive && !a.verbose && !a.debug)
			defer p.Stop()

			client, err := a.newClient()
			if err != nil {
				return a.userError(err)
			}

			opts := []zenshare.ShareOption{
				zenshare.WithExpiration(zenshare.Expiration(a.settings.Expire)),
				zenshare.WithShareStateHook(p.Hook()),
			}
			if f.password != "" {
				opts = append(opts, zenshare.WithPassword(f.password))
			}

			link, err := client.CreateShareLink(cmd.Context(), zenshare.Note{
				Title:   title,
				Content: content,
				Format:  zenshare.Format(f.format),
			}, opts...)
			if err != nil {
				return a.userError(err)
			}
			p.Stop()

			return printLink(a, link, f.asJSON)
		},
	}

	cmd.Flags().StringVarP(&f.title, "title", "t", "", "note title (default: file name)")
	cmd.Flags().StringVarP(&f.format, "format", "f", string(zenshare.FormatMarkdown), "content format: markdown or plaintext")
	cmd.Flags().StringP("expire", "e", "", "lifetime token (see 'zenshare expirations')")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "require a password in addition to the link")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the link as JSON")
	return cmd
}

func readNote(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

func printLink(a *app, link *zenshare.ShareLink, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.cfg.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(shareOutput{
			URL:               link.URL,
			PasteID:           link.PasteID,
			DeleteToken:       link.DeleteToken,
			Expiration:        string(link.Expiration),
			PasswordProtected: link.PasswordProtected,
		})
	}

	fmt.Fprintln(a.cfg.Stdout, link.URL)
	fmt.Fprintf(a.cfg.Stderr, "Expires: %s\n", link.Expiration.Label())
	if link.PasswordProtected {
		fmt.Fprintln(a.cfg.Stderr, "Viewers also need the password.")
	}
	fmt.Fprintf(a.cfg.Stderr, "Delete with: zenshare delete %s %s\n", link.PasteID, link.DeleteToken)
	return nil
}
