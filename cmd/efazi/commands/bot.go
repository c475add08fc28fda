package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"efazi/internal/assist"
	"efazi/internal/bot"
	"efazi/internal/geo"
	"efazi/internal/rod"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TelegramToken == "" {
			return errors.New("TELEGRAM_BOT_TOKEN is not set")
		}

		b, err := bot.New(
			cfg.TelegramToken,
			rod.NewPipeline(cfg.Thresholds),
			geo.NewClient(cfg.Geo),
			assist.NewClient(cfg.Groq),
		)
		if err != nil {
			return err
		}
		return b.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
