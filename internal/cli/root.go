package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "layerlint",
	Short: "layerlint - consistent layer names for design documents",
	Long: `layerlint infers meaningful names for the layers of an exported design
document from their structure: kind, auto-layout, size, fills, effects and
children. Names follow one of four conventions (atomic, component, semantic,
handoff) in kebab or pascal casing.

Settings come from .layerlint/config.yml, a .env file and LAYERLINT_*
environment variables; command flags override them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "C", "", "project root holding .layerlint/ (default is the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// projectRoot returns the --dir flag or the working directory.
func projectRoot() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
