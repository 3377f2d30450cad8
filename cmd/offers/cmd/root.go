// Package cmd implements the offers CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/offer-catalog/internal/config"
)

const defaultConfigName = ".offers.yaml"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "offers",
		Short: "CLI client for the offer catalog API",
		Long: "offers is a command-line client for the offer catalog API.\n" +
			"It lets you browse offers around a location, inspect categories,\n" +
			"request redemption codes and search companies and tags.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/"+defaultConfigName+")")
	rootCmd.PersistentFlags().
		String("api-url", "", "catalog API base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().
		String("api-key", "", "catalog API key (overrides api.api_key)")
	rootCmd.PersistentFlags().
		String("user-token", "", "user token (overrides user.token)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	for _, name := range []string{"api-url", "api-key", "user-token", "output"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(findCmd())
	rootCmd.AddCommand(recommendedCmd())
	rootCmd.AddCommand(relatedCmd())
	rootCmd.AddCommand(nearbyCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(codeCmd())
	rootCmd.AddCommand(urlsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(historyCmd())
}

func initConfig() {
	viper.SetEnvPrefix("OFFERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the YAML config file, then applies flag and environment
// overrides on top of it.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if v := viper.GetString("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := viper.GetString("api-key"); v != "" {
		cfg.API.APIKey = v
	}
	if v := viper.GetString("user-token"); v != "" {
		cfg.User.Token = v
	}

	return config.Finalize(cfg)
}

// configPath returns the explicit --config path, or the default file in the
// home directory when it exists.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil //nolint:nilerr // no home directory means no default config
	}

	path := filepath.Join(home, defaultConfigName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("checking default config: %w", err)
	}
	return path, nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
