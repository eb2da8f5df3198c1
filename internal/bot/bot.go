package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/logger"
)

// Sender delivers text replies. *Bot implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithMarkdown(chatID int64, text string, disableLinks bool) error
}

// Handler processes one update.
type Handler func(s Sender, update tgbotapi.Update) error

// Handlers routes updates: commands by name, callbacks by data, and
// everything else through Messages in order.
type Handlers struct {
	Commands  map[string]Handler
	Messages  []Handler
	Callbacks map[string]Handler
}

// Bot represents a configurable Telegram bot
type Bot struct {
	Client     *tgbotapi.BotAPI
	updateChan tgbotapi.UpdatesChannel
	name       string
}

// New creates a new bot instance
func New(name, token string) (*Bot, error) {
	botClient, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updateChan := botClient.GetUpdatesChan(updateConfig)

	return &Bot{
		Client:     botClient,
		updateChan: updateChan,
		name:       name,
	}, nil
}

// Start processes updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context, handlers Handlers) {
	logger.Info("bot authorized", zap.String("bot", b.name), zap.String("account", b.Client.Self.UserName))

	for {
		select {
		case update := <-b.updateChan:
			go Dispatch(b, handlers, update, b.name)
		case <-ctx.Done():
			b.Client.StopReceivingUpdates()
			return
		}
	}
}

// Dispatch runs the handler matching update.
func Dispatch(s Sender, handlers Handlers, update tgbotapi.Update, name string) {
	if update.Message != nil && update.Message.IsCommand() {
		if handler, exists := handlers.Commands[update.Message.Command()]; exists {
			if err := handler(s, update); err != nil {
				logger.Error("command handler error", zap.String("bot", name), zap.String("command", update.Message.Command()), zap.Error(err))
			}
			return
		}
	}

	if update.CallbackQuery != nil {
		if handler, exists := handlers.Callbacks[update.CallbackQuery.Data]; exists {
			if err := handler(s, update); err != nil {
				logger.Error("callback handler error", zap.String("bot", name), zap.Error(err))
			}
			return
		}
	}

	for _, handler := range handlers.Messages {
		if err := handler(s, update); err != nil {
			logger.Error("message handler error", zap.String("bot", name), zap.Error(err))
		}
	}
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendMessageWithMarkdown(chatID int64, text string, disableLinks bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = disableLinks
	_, err := b.Client.Send(msg)
	return err
}
