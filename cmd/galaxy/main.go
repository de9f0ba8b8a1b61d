// Command galaxy renders a procedurally generated spiral galaxy and lets its
// parameters be tweaked live. It can also generate clouds headlessly.
package main

import (
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-galaxy/config"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW must be driven from the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	envFiles   []string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "galaxy",
		Short:         "Procedural spiral galaxy point cloud",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML, JSON or TOML config file")
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files loaded before reading the environment")
	config.BindFlags(flags)

	cmd.AddCommand(
		newRunCommand(opts),
		newGenerateCommand(opts),
		newPresetsCommand(),
	)
	return cmd
}

// load resolves the configuration for cmd from its flags, the environment and the config file.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(
		config.WithEnvFiles(o.envFiles...),
		config.WithConfigFile(o.configFile),
		config.WithFlags(cmd.Flags()),
	)
}
