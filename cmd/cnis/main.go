package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/config"
)

var (
	cfgFile   string
	appConfig *config.Config
	version   = "dev"
	rootCmd   = &cobra.Command{
		Use:   "cnis",
		Short: "📄 CNIS extract parser and contribution-time calculator",
		Long: `cnis reads the Brazilian social security registry extract (CNIS) as PDF or text,
extracts the insured person's bonds and computes the contribution time they add up to.

Parsed extracts can be saved, reviewed bond by bond and exported as PDF, XLSX or JSON reports.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/cnis/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("db", "", "database path (default: $HOME/.config/cnis/cnis.db)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))

	// Add commands
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(importsCmd())
	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, common.Explain(err))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("CNIS")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	// Set up logging
	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cnis version %s\n", version)
		},
	}
}
