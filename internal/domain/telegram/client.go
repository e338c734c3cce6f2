// internal/domain/telegram/client.go
package telegram

import "gopkg.in/telebot.v3"

// Client is the outbound messaging seam. The scheduler and application
// services talk to this interface instead of the bot library directly.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
