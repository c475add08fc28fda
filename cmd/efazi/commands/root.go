package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"efazi/internal/config"
	"efazi/internal/logging"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "efazi",
	Short: "Efazi builds Careem ROD reports from raw delivery exports",
	Long: `Efazi reconciles three tabular exports (tracking timestamps, shipped
quantities/stores, and the base rider sheet) into one report row per order,
derives the delivery-lifecycle interval metrics, and classifies each order
with an auto-generated root cause.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Efazi starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
