package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:   "formstate",
		Short: "Validate, fill and render forms described by a field registry",
		Long: `formstate drives a form state engine from a registry document
(YAML or JSON) or from an OpenAPI operation's request body.

Settings are read from FORMSTATE_* environment variables and an optional
.env file; flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.logLevel, "log-level", "", "log level (overrides FORMSTATE_LOG_LEVEL)")
	flags.StringVar(&app.flags.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&app.flags.envFile, "env-file", ".env", "dotenv file to read before the environment")

	rootCmd.AddCommand(
		validateCmd(app),
		fillCmd(app),
		renderCmd(app),
		templatesCmd(app),
		versionCmd(),
	)
	return rootCmd
}
