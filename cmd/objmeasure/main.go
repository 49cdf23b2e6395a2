// Command objmeasure is the CLI front end for the object-measurement
// engine: a cobra root command with measure and serve subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brackenfield/objmeasure/internal/logger"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "objmeasure",
		Short: "objmeasure extracts per-object features from labeled raster images",
	}

	root.PersistentFlags().String("config", "", "path to a config file (YAML/JSON/TOML)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
			viper.SetConfigFile(cfgPath)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config file: %w", err)
			}
		}
		viper.AutomaticEnv()
		if lvl, err := logrus.ParseLevel(viper.GetString("log_level")); err == nil {
			logger.Logger.SetLevel(lvl)
		}
		return nil
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newMeasureCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the objmeasure version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("objmeasure v%s\n", version)
		},
	}
}
