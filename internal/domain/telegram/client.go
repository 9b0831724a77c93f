package telegram

// Client defines an interface for sending messages via a Telegram bot.
// This keeps the polling logic independent of the bot library.
type Client interface {
	// SendMessage delivers text to a chat given by numeric ID or @username.
	SendMessage(chatID string, text string) error
}
