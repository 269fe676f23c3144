package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MrSnakeDoc/homey/internal/config"
)

const (
	flagConfig    = "config"
	flagListen    = "listen"
	flagStaticDir = "static-dir"
	flagLogLevel  = "log-level"
)

// newRootCommand builds the homey command tree. Running homey without a
// subcommand serves the dashboard.
func newRootCommand(v *viper.Viper) *cobra.Command {
	config.SetDefaults(v)

	root := &cobra.Command{
		Use:           "homey",
		Short:         "Self-hosted link dashboard",
		Long:          "Homey serves a page of links read from a JSON file and an editor to change it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v)
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagConfig, v.GetString(config.KeyConfigFile), "path to the dashboard JSON file (HOMEY_CONFIG_FILE)")
	flags.String(flagListen, v.GetString(config.KeyListenPort), "listen address (HOMEY_LISTEN_PORT)")
	flags.String(flagStaticDir, v.GetString(config.KeyStaticDir), "directory served under /static (HOMEY_STATIC_DIR)")
	flags.String(flagLogLevel, v.GetString(config.KeyLogLevel), "log level: debug, info, warn, error (HOMEY_LOG_LEVEL)")

	mustBind(v, flags, config.KeyConfigFile, flagConfig)
	mustBind(v, flags, config.KeyListenPort, flagListen)
	mustBind(v, flags, config.KeyStaticDir, flagStaticDir)
	mustBind(v, flags, config.KeyLogLevel, flagLogLevel)

	root.AddCommand(
		newServeCommand(v),
		newValidateCommand(v),
		newFmtCommand(v),
		newImportHomepageCommand(),
		newVersionCommand(),
	)

	return root
}

// mustBind binds a flag to a viper key; flags only override when set explicitly.
func mustBind(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	flag := flags.Lookup(name)
	if flag == nil {
		panic(fmt.Sprintf("flag %q not defined", name))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// fileArg returns the single positional argument, or the configured file.
func fileArg(v *viper.Viper, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return v.GetString(config.KeyConfigFile)
}
