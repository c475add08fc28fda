// Package bot is the messaging front end: it collects the three source
// exports per chat, runs the report pipeline, and falls back to the chat
// assistant for anything that is not a report command.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"efazi/internal/assist"
	"efazi/internal/geo"
	"efazi/internal/report"
	"efazi/internal/rod"
	"efazi/internal/table"
)

const helpText = `Send me your three exports as documents:
1. source1 (tracking & dates)
2. source2 (shipped qty & stores)
3. base (main rider sheet)
Caption each file base / source1 / source2, or just send them in that order.
I reply with the finished ROD workbook.

Other commands: "dammam report" for the area distance sheet, "reset" to start over.`

// Bot runs the long-polling Telegram loop.
type Bot struct {
	api      *tgbotapi.BotAPI
	pipeline *rod.Pipeline
	geo      *geo.Client
	assist   *assist.Client
	sessions *sessionStore
}

// New connects to the Telegram API.
func New(token string, pipeline *rod.Pipeline, geoClient *geo.Client, assistClient *assist.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("Telegram bot authorized")

	return &Bot{
		api:      api,
		pipeline: pipeline,
		geo:      geoClient,
		assist:   assistClient,
		sessions: newSessionStore(),
	}, nil
}

// Run blocks processing updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}

	text := strings.ToLower(strings.TrimSpace(msg.Text))
	switch {
	case text == "/start" || text == "help" || text == "/help":
		b.reply(chatID, helpText)
	case text == "reset" || text == "/reset":
		b.sessions.clear(chatID)
		b.reply(chatID, "Session cleared. Send your three files to begin.")
	case strings.Contains(text, "dammam") && strings.Contains(text, "report"):
		b.handleAreaReport(ctx, chatID)
	default:
		b.handleChat(ctx, chatID, msg.Text)
	}
}

func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	url, err := b.api.GetFileDirectURL(msg.Document.FileID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve file URL")
		b.reply(chatID, "I couldn't fetch that file from Telegram, please resend it.")
		return
	}
	data, err := downloadFile(url)
	if err != nil {
		log.Error().Err(err).Msg("Failed to download document")
		b.reply(chatID, "I couldn't download that file, please resend it.")
		return
	}

	t, err := table.Load(msg.Document.FileName, data)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("I couldn't read %s: %v", msg.Document.FileName, err))
		return
	}

	slot := b.sessions.store(chatID, slotFromCaption(msg.Caption), t)
	sess := b.sessions.get(chatID)
	if !sess.complete() {
		b.reply(chatID, fmt.Sprintf("Got %s as %s. Still waiting for: %s.", msg.Document.FileName, slot, strings.Join(sess.missing(), ", ")))
		return
	}

	b.runReport(ctx, chatID, sess)
	b.sessions.clear(chatID)
}

func (b *Bot) runReport(ctx context.Context, chatID int64, sess *session) {
	b.reply(chatID, "Running the ROD automation...")

	records, err := b.pipeline.Run(ctx, sess.base, sess.source1, sess.source2, nil)
	if err != nil {
		log.Error().Err(err).Msg("Pipeline run failed")
		b.reply(chatID, "Report run failed, session kept. Try again or send \"reset\".")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, records); err != nil {
		log.Error().Err(err).Msg("Workbook serialization failed")
		b.reply(chatID, "I built the report but couldn't package it, sorry.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "Careem_ROD_Final.xlsx", Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("Done. %d orders classified.", len(records))
	b.send(doc)
}

func (b *Bot) handleAreaReport(ctx context.Context, chatID int64) {
	b.reply(chatID, "Scraping Dammam areas and calculating road distances from Nakheel Mall, this takes a couple of minutes...")

	rows, err := geo.BuildAreaReport(ctx, b.geo, "Dammam", geo.NakheelMall, 100)
	if err != nil {
		log.Error().Err(err).Msg("Area report failed")
		b.reply(chatID, "The area lookup failed, please try again later.")
		return
	}

	data, err := areaWorkbook(rows)
	if err != nil {
		log.Error().Err(err).Msg("Area workbook failed")
		b.reply(chatID, "I fetched the areas but couldn't package the sheet.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "Dammam_Report.xlsx", Bytes: data})
	doc.Caption = "Here is your Dammam data."
	b.send(doc)
}

func (b *Bot) handleChat(ctx context.Context, chatID int64, text string) {
	if !b.assist.Enabled() {
		b.reply(chatID, helpText)
		return
	}
	answer, err := b.assist.Chat(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("Chat completion failed")
		b.reply(chatID, "The assistant is unavailable right now.")
		return
	}
	b.reply(chatID, answer)
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Error().Err(err).Msg("Telegram send failed")
	}
}

func downloadFile(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
