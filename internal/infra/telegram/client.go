// internal/infra/telegram/client.go
package telegram

import (
	"errors"
	"net/http"
	"time"

	"gopkg.in/telebot.v3"
)

var ErrEmptyChatID = errors.New("telegram chat id is empty")

// chatRecipient addresses a chat by numeric ID or @username.
type chatRecipient string

func (r chatRecipient) Recipient() string { return string(r) }

// NewBot creates a send-only bot. The poller is never started, so no
// updates are consumed. An empty apiURL selects the public Bot API.
func NewBot(token, apiURL string) (*telebot.Bot, error) {
	return telebot.NewBot(telebot.Settings{
		URL:    apiURL,
		Token:  token,
		Client: &http.Client{Timeout: 30 * time.Second},
	})
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a plain text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string) error {
	if chatID == "" {
		return ErrEmptyChatID
	}
	_, err := tba.bot.Send(chatRecipient(chatID), text)
	return err
}
