package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kluelabs/extdev/pkg/extdev/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "extdev [path]",
		Short: "Development toolkit for the Klue browser extension",
		Long: `Extdev watches extension source files and reminds you to reload.

The root command polls the watched directory, fingerprints every eligible
file, and prints the changed paths together with chrome://extensions reload
instructions whenever content changes between cycles.

Examples:
  extdev                        # Watch the current directory
  extdev ~/src/klue             # Watch a specific directory
  extdev -i 2s -e js,css .      # Poll every 2s, watch .js and .css only
  extdev -o plain .             # Unstyled reports for dumb terminals
  extdev icons                  # Generate placeholder icons
  extdev config show            # Show configuration`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: initializeLogging,
		RunE:              runWatch,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/extdev/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "report style (pretty, plain)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Watch flags (root command only)
	rootCmd.Flags().DurationP("interval", "i", 0, "polling interval between scans (default 1s)")
	rootCmd.Flags().StringSliceP("ext", "e", nil, "file extensions to watch (default .js,.html,.css,.json)")
	rootCmd.Flags().StringSlice("ignore", nil, "exact filenames to skip")
	rootCmd.Flags().StringSlice("ignore-pattern", nil, "glob patterns for paths to skip")

	// Bind flags to viper
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("watch.interval", rootCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("watch.extensions", rootCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("watch.ignore", rootCmd.Flags().Lookup("ignore"))
	_ = viper.BindPFlag("watch.ignore_patterns", rootCmd.Flags().Lookup("ignore-pattern"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Set config name and type
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "extdev"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "extdev"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("EXTDEV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	config.SetDefaults(viper.GetViper())

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
