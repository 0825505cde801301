// Package notify pushes a confirmed booking to Telegram. Optional: when no
// token is configured the CLI skips notification entirely.
package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"github.com/transit-helpers/thsr-helper/booking"
)

// Telegram sends booking receipts to a single chat.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
}

// NewTelegram creates a notifier for the given bot token and chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: b, chatID: chatID}, nil
}

// Booked sends the receipt summary.
func (t *Telegram) Booked(ctx context.Context, ticket booking.Ticket) error {
	msg := fmt.Sprintf(
		"Booking confirmed\ncode: %s\ndate: %s\ntrain %s %s → %s (%s–%s)\nprice: %s\npay by: %s",
		ticket.ID, ticket.Date, ticket.TrainID,
		ticket.StartStation, ticket.DestStation,
		ticket.DepartTime, ticket.ArrivalTime,
		ticket.Price, ticket.PaymentDeadline,
	)
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   msg,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
