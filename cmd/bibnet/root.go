package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bibnet",
	Short: "Bibliometric network analysis from a CSV document table",
	Long: `bibnet reads a CSV export of scholarly documents and computes
co-occurrence networks, community partitions and citation structures,
writing Pajek, GraphML or GEXF files for downstream visualization.

Expected CSV columns (case-insensitive, extras ignored): id, title,
abstract, author_keywords, index_keywords, authors, affiliations,
countries, references, cited_by, year, short_label.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}

		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML); flags override it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringP("input", "i", "", "CSV document table (required)")
}

// initConfig layers viper sources: defaults < config file < BIBNET_* env
// < flags.
func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("bibnet")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	return viper.BindPFlags(cmd.Flags())
}

func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		logger, err = cfg.Build()
	}

	return err
}

func requireInput() (string, error) {
	input := viper.GetString("input")
	if input == "" {
		return "", fmt.Errorf("--input is required")
	}

	return input, nil
}
