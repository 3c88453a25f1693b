package main

import (
	"fmt"
	"os"
	"strings"

	"meater/internal/config"
	"meater/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meater",
	Short: "Watch a Meater wireless thermometer from the terminal",
	Long: `meater logs in to Meater Cloud, polls your probe every couple of seconds
and shows the internal, ambient and target temperatures of the current cook.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'meater --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or <data dir>/config.yaml)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("api-url", "", "Meater Cloud API base URL (overrides MEATER_API_URL)")
	pf.Duration("interval", 0, "Time between two polls (default 2s)")

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("api_url", pf.Lookup("api-url"))
	viper.BindPFlag("poll_interval", pf.Lookup("interval"))
}

// normalizeFlagName lets --api_url and --api-url mean the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	// Validate configuration values
	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	s := config.Current()
	telemetry.InitLogger(s.Verbose, s.LogFile, false)
}
