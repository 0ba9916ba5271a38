// Package cmd is for command line interactions with the assembly
// clustering validation workflow
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/megjohnson1999/assembly-clustering-validation/config"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "acv",
	Short: `Validate k-mer clustered co-assembly against random grouping.
Generate the staged assembly workflow, score the resulting assemblies and
compare the grouping strategies`,
	Version: "0.1.0",
}

func init() {
	// settings is an optional parameter for a settings file overriding the protocol defaults
	rootCmd.PersistentFlags().String("settings", config.SettingsFile, "experiment settings file")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
