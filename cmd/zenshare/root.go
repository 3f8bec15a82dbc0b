package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zenmark/zenshare"
)

// app is the state shared by all commands of one invocation.
type app struct {
	cfg        Config
	configPath string
	verbose    bool
	debug      bool

	settings settings
	logger   *cliLogger
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "zenshare",
		Short: "Share notes through end-to-end encrypted links",
		Long: `zenshare encrypts notes locally and stores only the ciphertext on a
PrivateBin-compatible paste service. The decryption key lives in the link
fragment and never reaches any server.

Configuration is read from the config file, then .env and ZENSHARE_*
environment variables, then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cfg.Stderr, a.verbose, a.debug)
			a.logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), a.verbose, a.debug)

			s, err := resolveSettings(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.settings = s
			a.logger.Debugf("Using paste store %s", s.Host)
			return nil
		},
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath(), "config file")
	flags.String("host", zenshare.DefaultHost, "paste store URL")
	flags.String("origin", zenshare.DefaultOrigin, "origin used in share links")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.debug, "debug", "d", false, "enable debug output")

	root.AddCommand(
		newShareCmd(a),
		newOpenCmd(a),
		newDeleteCmd(a),
		newExpirationsCmd(a),
		newConfigCmd(a),
		newDevStoreCmd(a),
	)
	return root
}

// newClient builds a share client from the effective settings.
func (a *app) newClient(extra ...zenshare.Option) (*zenshare.Client, error) {
	opts, err := a.settings.clientOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, zenshare.WithLogger(a.logger))
	opts = append(opts, extra...)
	return zenshare.New(opts...)
}

// userError replaces a share failure with its user-facing message. The
// full chain is logged at debug level.
func (a *app) userError(err error) error {
	var shareErr *zenshare.ShareError
	if !errors.As(err, &shareErr) {
		return err
	}
	a.logger.Debugf("%v", err)
	return errors.New(shareErr.Message)
}
