package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/census-prep/internal/common"
	"github.com/Veraticus/census-prep/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "censusprep",
		Short: "Attach census life-event probabilities to customer tables",
		Long: `censusprep aligns a census extract with a customer table, averages the
census probabilities of migration, birth, marriage and divorce per
demographic group, and annotates your event tables with each customer's
probabilities.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/censusprep/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("mappings", "", "YAML file overriding the category mappings")
	rootCmd.PersistentFlags().String("database", config.DefaultDatabasePath, "run history database")

	_ = viper.BindPFlag(config.KeyLoggingLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLoggingFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyMappings, rootCmd.PersistentFlags().Lookup("mappings"))
	_ = viper.BindPFlag(config.KeyDatabase, rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.AddCommand(prepCmd())
	rootCmd.AddCommand(exploreCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(mappingsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		return err
	}
	return setupLogging()
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLoggingLevel))
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, viper.GetString(config.KeyLoggingFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "censusprep %s\n", version)
		},
	}
}
