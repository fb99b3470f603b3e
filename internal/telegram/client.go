// Package telegram is the chat transport for the HabitHack bot. It relays
// (user, text, now) tuples into the tracker core and sends the returned
// feedback back, and owns every Telegram-specific detail: commands, the
// category reply keyboard, Markdown formatting, file delivery, and the
// rate-limited reminder broadcast.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/habithack/habithack/internal/logger"
	"github.com/habithack/habithack/internal/metrics"
	"github.com/habithack/habithack/internal/models"
	"github.com/habithack/habithack/internal/storage"
	"github.com/habithack/habithack/internal/tracker"
)

const welcomeText = "👋 Welcome back to HabitHack 2.0!\nWhat did you do today?"

// Options carries the transport configuration.
type Options struct {
	AdminUsername string // "@handle" allowed to pull the raw log
	UpdateTimeout int    // long-poll timeout in seconds
	SendRate      float64
	SendBurst     int
	RetryDelay    time.Duration
	ReminderText  string
	LogPath       string // raw log file served by /getcsv
}

// Bot wires Telegram updates into the tracker core.
type Bot struct {
	api      *tgbotapi.BotAPI
	tracker  *tracker.Tracker
	registry storage.UserRegistry
	opts     Options
	limiter  *rate.Limiter
}

// NewBot authenticates against the Bot API and returns the transport.
func NewBot(token string, tr *tracker.Tracker, registry storage.UserRegistry, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.SendRate <= 0 {
		opts.SendRate = 25.0
	}
	if opts.SendBurst <= 0 {
		opts.SendBurst = 5
	}
	return &Bot{
		api:      api,
		tracker:  tr,
		registry: registry,
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(opts.SendRate), opts.SendBurst),
	}, nil
}

// Run consumes updates until the context is cancelled. One update is handled
// to completion before the next; users only ever interleave across chats.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.opts.UpdateTimeout
	updates := b.api.GetUpdatesChan(cfg)

	logger.Info("Telegram bot @%s is polling for updates", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "report":
		b.handleReport(msg)
	case "summary":
		b.handleSummary(msg)
	case "getcsv":
		b.handleGetCSV(msg)
	case "":
		b.handleText(msg)
	default:
		b.reply(msg.Chat.ID, "🤔 Unknown command. Try /start, /report or /summary.")
	}
}

// handleStart registers the chat in the broadcast registry and arms the
// category prompt. Invoking it mid-prompt simply restarts the prompt.
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if err := b.registry.Register(chatID); err != nil {
		logger.Error("Failed to register user %s: %v", chatID, err)
	}

	b.tracker.Begin(chatID)

	out := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
	out.ReplyMarkup = categoryKeyboard()
	b.send(out)
}

// handleText consumes exactly one pending category answer. Text arriving
// without an armed prompt gets a hint instead of being logged.
func (b *Bot) handleText(msg *tgbotapi.Message) {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if !b.tracker.Pending(chatID) {
		b.reply(msg.Chat.ID, "ℹ️ Use /start to log what you did today.")
		return
	}

	res, err := b.tracker.LogAction(chatID, displayName(msg.From), msg.Text, time.Now())
	if errors.Is(err, tracker.ErrUnknownCategory) {
		out := tgbotapi.NewMessage(msg.Chat.ID, "🙅 Please pick one of the buttons below.")
		out.ReplyMarkup = categoryKeyboard()
		b.send(out)
		return
	}
	if err != nil {
		// The prompt stays armed; the user can answer again once storage recovers.
		logger.Error("Failed to log action for %s: %v", chatID, err)
		b.reply(msg.Chat.ID, "⚠️ Couldn't save that, please try again.")
		return
	}
	b.reply(msg.Chat.ID, res.Message)
}

func (b *Bot) handleReport(msg *tgbotapi.Message) {
	agg, err := b.tracker.WeeklyReport(displayName(msg.From), time.Now())
	if err != nil {
		logger.Error("Failed to build report: %v", err)
		b.reply(msg.Chat.ID, "⚠️ Couldn't read your history, please try again.")
		return
	}
	b.reply(msg.Chat.ID, formatReport(agg))
}

func (b *Bot) handleSummary(msg *tgbotapi.Message) {
	username := displayName(msg.From)
	summary, err := b.tracker.FullSummary(username)
	if err != nil {
		logger.Error("Failed to build summary: %v", err)
		b.reply(msg.Chat.ID, "⚠️ No log found. Start using the bot to generate data.")
		return
	}
	if summary.TotalActions == 0 {
		b.reply(msg.Chat.ID, "🙁 You haven’t logged any actions yet.")
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, formatSummary(summary))
	out.ParseMode = tgbotapi.ModeMarkdown
	b.send(out)
}

// handleGetCSV serves the raw log file to the single allow-listed identity.
// Anyone else gets a hard rejection with no data.
func (b *Bot) handleGetCSV(msg *tgbotapi.Message) {
	if msg.From.UserName == "" || "@"+msg.From.UserName != b.opts.AdminUsername {
		b.reply(msg.Chat.ID, "🚫 You’re not authorized to access this file.")
		return
	}
	if _, err := os.Stat(b.opts.LogPath); err != nil {
		b.reply(msg.Chat.ID, "⚠️ logs.csv not found.")
		return
	}
	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(b.opts.LogPath))
	if _, err := b.api.Send(doc); err != nil {
		logger.Error("Failed to send log file: %v", err)
		b.reply(msg.Chat.ID, "⚠️ Couldn't deliver the file, please try again.")
	}
}

// Broadcast sends the fixed reminder to every registered chat. Per-id
// failures are logged and skipped; the remaining sends always go out.
func (b *Bot) Broadcast(ctx context.Context) {
	ids, err := b.registry.ListAll()
	if err != nil {
		logger.Error("Reminder broadcast aborted, registry unreadable: %v", err)
		return
	}

	runID := uuid.New().String()
	logger.Info("Reminder broadcast %s starting for %d users", runID, len(ids))

	sent := 0
	for _, id := range ids {
		if err := b.limiter.Wait(ctx); err != nil {
			logger.Warn("Reminder broadcast %s cancelled after %d sends", runID, sent)
			return
		}
		chatID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			logger.Warn("Reminder broadcast %s: skipping malformed id %q", runID, id)
			continue
		}
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, b.opts.ReminderText)); err != nil {
			metrics.ReminderFailures.Inc()
			logger.Warn("Reminder broadcast %s: failed to reach %s: %v", runID, id, err)
			continue
		}
		metrics.RemindersSent.Inc()
		sent++
	}
	logger.Info("Reminder broadcast %s done: %d/%d delivered", runID, sent, len(ids))
}

// reply sends a plain text message.
func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// send delivers a message with one retry after a short delay.
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("Send failed, retrying once: %v", err)
		time.Sleep(b.opts.RetryDelay)
		if _, err := b.api.Send(msg); err != nil {
			logger.Error("Send failed after retry: %v", err)
		}
	}
}

// categoryKeyboard builds the one-time reply keyboard with every known
// category, in table order.
func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var buttons []tgbotapi.KeyboardButton
	for _, c := range models.Categories() {
		buttons = append(buttons, tgbotapi.NewKeyboardButton(string(c)))
	}
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(buttons...))
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}

// displayName resolves the stable identity used in the log: the handle when
// the account has one, the first name otherwise.
func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return u.FirstName
}
