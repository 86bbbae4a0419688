package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"clinic-booking-bot/internal/dialog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// apiClient is the slice of the Telegram client the bot actually uses.
type apiClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot adapts Telegram webhook updates to dialogue actions and renders the
// controller's replies back as messages with inline keyboards.
type Bot struct {
	api        apiClient
	controller *dialog.Controller
	log        *logrus.Logger
}

func NewBot(token string, controller *dialog.Controller, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Telegram bot authorized: @%s", api.Self.UserName)
	return newBot(api, controller, log), nil
}

func newBot(api apiClient, controller *dialog.Controller, log *logrus.Logger) *Bot {
	return &Bot{
		api:        api,
		controller: controller,
		log:        log,
	}
}

// WebhookHandler decodes one Telegram update per request. Malformed bodies
// are acknowledged with 200 so Telegram does not retry them forever.
func (b *Bot) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			b.log.Warnf("Failed to decode webhook update: %+v", err)
			w.WriteHeader(http.StatusOK)
			return
		}

		b.HandleUpdate(r.Context(), &update)
		w.WriteHeader(http.StatusOK)
	}
}

// HandleUpdate routes one update through the dialogue controller.
func (b *Bot) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner even when the
	// turn itself takes a moment.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warnf("Failed to answer callback %s: %+v", query.ID, err)
	}

	action, err := dialog.ParseCallback(query.Data)
	if err != nil {
		b.log.Warnf("Ignoring callback from user %d: %+v", query.From.ID, err)
		action = dialog.Start{}
	}

	reply := b.controller.Handle(ctx, dialog.Incoming{
		UserID:   query.From.ID,
		FullName: fullName(query.From),
		Action:   action,
	})

	if query.Message != nil {
		b.send(query.Message.Chat.ID, reply)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	var action dialog.Action
	switch {
	case len(msg.Photo) > 0:
		action = dialog.PhotoReceived{}
	default:
		// /start and any free text outside the keyboard flow both get
		// the main menu.
		action = dialog.Start{}
	}

	reply := b.controller.Handle(ctx, dialog.Incoming{
		UserID:   msg.From.ID,
		FullName: fullName(msg.From),
		Action:   action,
	})
	b.send(msg.Chat.ID, reply)
}

func (b *Bot) send(chatID int64, reply dialog.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if markup, ok := keyboard(reply); ok {
		msg.ReplyMarkup = markup
	}

	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorf("Failed to send message to chat %d: %+v", chatID, err)
	}
}

// keyboard renders the reply's choice rows as an inline keyboard.
func keyboard(reply dialog.Reply) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(reply.Choices) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Choices))
	for _, row := range reply.Choices {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, choice := range row {
			if choice.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(choice.Label, choice.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Data))
			}
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func fullName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
}
