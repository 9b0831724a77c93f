// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/practicum"

	"github.com/sirupsen/logrus"
)

const (
	StartupMessage = "Бот запущен"
	failurePrefix  = "Сбой в работе программы: "
)

// Fetcher returns the raw homework API payload for the window starting at fromDate.
type Fetcher interface {
	FetchUpdates(ctx context.Context, fromDate int64) (homework.RawResponse, error)
}

// Waiter blocks until the next poll is due.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Poller relays homework status changes to a single chat.
// It is not safe for concurrent use; Run owns it.
type Poller struct {
	fetcher Fetcher
	sender  domainTelegram.Client
	waiter  Waiter
	chatID  string
	cursor  int64 // Unix seconds; start of the next polling window
	logger  *logrus.Entry
}

func NewPoller(
	fetcher Fetcher,
	sender domainTelegram.Client,
	waiter Waiter,
	chatID string,
	startCursor int64, // usually time.Now().Unix()
	logger *logrus.Entry,
) *Poller {
	return &Poller{
		fetcher: fetcher,
		sender:  sender,
		waiter:  waiter,
		chatID:  chatID,
		cursor:  startCursor,
		logger:  logger,
	}
}

// Cursor returns the start of the next polling window.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// Notify sends message to the configured chat. Send failures are logged, never returned.
func (p *Poller) Notify(message string) {
	if err := p.sender.SendMessage(p.chatID, message); err != nil {
		p.logger.WithError(err).WithField("chat_id", p.chatID).Error("Failed to send message to Telegram")
		return
	}
	p.logger.WithField("chat_id", p.chatID).Info("Message sent to Telegram")
}

// Step runs one fetch, validate, render, notify cycle. The cursor moves only when
// every step before notify succeeded.
func (p *Poller) Step(ctx context.Context) error {
	logCtx := p.logger.WithField("from_date", p.cursor)

	raw, err := p.fetcher.FetchUpdates(ctx, p.cursor)
	if err != nil {
		return fmt.Errorf("fetch updates: %w", err)
	}

	record, err := homework.ValidateResponse(raw)
	if err != nil {
		return err
	}

	message, err := homework.RenderMessage(record)
	if err != nil {
		return err
	}
	logCtx.WithField("homework", record.Name).WithField("status", record.Status).Info("Homework status changed")

	p.Notify(message)

	next, ok := homework.CurrentDate(raw)
	if !ok {
		logCtx.Warn("Response has no integer current_date; keeping the polling window")
		return nil
	}
	p.cursor = next
	return nil
}

// Run polls until ctx is cancelled. Errors never stop the loop: each one is
// logged and reported to the chat, and the same window is retried next time.
func (p *Poller) Run(ctx context.Context) {
	p.logger.WithField("from_date", p.cursor).Info("Starting homework status polling")

	for {
		if err := p.Step(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.WithError(err).WithField("error_kind", ErrorKind(err)).Error("Polling iteration failed")
			p.reportFailure(err)
		} else {
			p.logger.WithField("next_from_date", p.cursor).Debug("Polling iteration succeeded")
		}

		if err := p.waiter.Wait(ctx); err != nil {
			break
		}
	}

	p.logger.Info("Homework status polling stopped")
}

// reportFailure tells the chat about a failed iteration, best effort.
func (p *Poller) reportFailure(cause error) {
	if err := p.sender.SendMessage(p.chatID, failurePrefix+cause.Error()); err != nil {
		p.logger.WithError(err).Error("Telegram interaction failed while reporting a polling error")
	}
}

// ErrorKind names the failure category of a polling error for logs.
func ErrorKind(err error) string {
	var statusErr *practicum.StatusError
	var unknownErr *homework.UnknownStatusError
	switch {
	case errors.Is(err, practicum.ErrTransport):
		return "transport"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.Is(err, practicum.ErrDecode):
		return "decode"
	case errors.Is(err, homework.ErrSchema):
		return "schema"
	case errors.As(err, &unknownErr):
		return "unknown_status"
	default:
		return "unexpected"
	}
}
