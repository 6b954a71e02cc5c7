// Package main provides the genoinsight command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genoinsight",
		Short:   "Variant scoring and clinical annotation pipeline",
		Long:    "genoinsight parses VCF files, scores variant pathogenicity with an ensemble of reference models, and produces clinical annotations and reports.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.genoinsight.yaml)")

	cmd.AddCommand(newAnnotateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		viper.SetConfigFile(filepath.Join(home, ".genoinsight.yaml"))
	}

	viper.SetEnvPrefix("GENOINSIGHT")
	viper.AutomaticEnv()

	viper.SetDefault("ancestry", "European")
	viper.SetDefault("output.format", "tab")
	viper.SetDefault("filter.min_quality", 20.0)
	viper.SetDefault("filter.max_allele_frequency", 0.5)
	viper.SetDefault("filter.pass_only", true)
	viper.SetDefault("server.addr", ":5000")

	// A missing config file is fine; everything has defaults.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// configString overrides dst from the config file when the flag was not
// set on the command line.
func configString(cmd *cobra.Command, flag, key string, dst *string) {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func configFloat64(cmd *cobra.Command, flag, key string, dst *float64) {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		*dst = viper.GetFloat64(key)
	}
}

func configBool(cmd *cobra.Command, flag, key string, dst *bool) {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		*dst = viper.GetBool(key)
	}
}

// newLogger builds the process logger. Verbose switches to development
// output with debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
