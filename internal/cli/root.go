// Package cli implements the samplerev command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tessellate-ai/samplerev/internal/api"
	"github.com/tessellate-ai/samplerev/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "samplerev",
	Short: "Terminal client for sample review and dataset building",
	Long: `samplerev is a terminal client for a sample-management backend:
keyboard-driven triage of dataset samples, filtered and sampled dataset
builds, and CSV import with live progress.

Review shortcuts: y keep, n remove, s skip, a/d or arrows to navigate,
ctrl+z to undo the last decision.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.samplerev/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "backend base URL")
	rootCmd.PersistentFlags().String("token", "", "API bearer token")

	_ = viper.BindPFlag("backend_url", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("api_token", rootCmd.PersistentFlags().Lookup("token"))

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(instancesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and SAMPLEREV_* environment
// variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		if err == nil {
			viper.AddConfigPath(dir)
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}
	}

	viper.SetEnvPrefix("SAMPLEREV")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env still apply.
	_ = viper.ReadInConfig()
}

// newClient builds the API client from the resolved configuration.
func newClient() (*api.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	c, err := api.New(cfg.BackendURL,
		api.WithToken(cfg.APIToken),
		api.WithPageSize(cfg.PageSize),
		api.WithRateLimit(cfg.RateLimit, int(cfg.RateLimit)*2),
	)
	if err != nil {
		return nil, cfg, err
	}
	return c, cfg, nil
}
