package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/opstate/internal/cliconfig"
	"github.com/bft-labs/opstate/pkg/state"
)

const helpDescription = `
Inspect and drive the persisted state of the device agent's current operation.

The state lives in <root>/.agent/current-operation and is replaced atomically
on every write, so it survives crashes and restarts of the agent.
`

var exampleUsage = strings.TrimSpace(`
  opstate show --root /etc/opstate
  opstate begin --id 1234 list
  opstate update Restarting
  opstate watch --log-format json
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "v" + state.Version
}

// cli carries the resolved configuration to subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  zerolog.Logger
}

func newRootCommand() (*cobra.Command, *cli) {
	a := &cli{
		cfg:    cliconfig.DefaultConfig(),
		logger: cliconfig.Logger(),
	}

	root := &cobra.Command{
		Use:           "opstate",
		Short:         "Inspect and drive the persisted current-operation state",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.opstate/config.toml)")
	flags.StringVar(&a.cfg.Root, "root", a.cfg.Root, "configuration root holding the .agent directory")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log output format (console, json)")

	root.AddCommand(
		newShowCommand(a),
		newClearCommand(a),
		newBeginCommand(a),
		newUpdateCommand(a),
		newRecoverCommand(a),
		newWatchCommand(a),
	)
	return root, a
}

// loadConfig applies file and environment configuration under the flags
// the user set explicitly, then validates the result.
func (a *cli) loadConfig(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = cliconfig.NewLogger(a.cfg, cmd.ErrOrStderr())
	a.logger.Debug().Interface("config", a.cfg).Msg("configuration")
	return nil
}

func main() {
	root, a := newRootCommand()
	if err := root.Execute(); err != nil {
		a.logger.Error().Err(err).Msg("opstate")
		os.Exit(1)
	}
}
