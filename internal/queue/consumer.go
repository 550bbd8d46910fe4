package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// Consumer reads follow-up events and appends one line per event to a
// log file that staff work through.
type Consumer struct {
	url     string
	queue   string
	logPath string
	log     *zap.Logger
}

// NewConsumer returns a consumer for the broker at url writing to logPath.
func NewConsumer(url, logPath string, log *zap.Logger) *Consumer {
	return &Consumer{url: url, queue: FollowupQueue, logPath: logPath, log: log}
}

// Run connects to the broker, declares the follow-up queue and consumes
// until ctx is cancelled.  Lost connections are re-dialled with
// exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("notifier: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("notifier: consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("notifier: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.log.Info("notifier: consuming", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				c.log.Error("notifier: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // drop, a malformed event will not parse on retry either
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends it to the follow-up log.
func (c *Consumer) Handle(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line, err := FormatLine(ev)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev Event) (string, error) {
	switch {
	case ev.Type == TypeBookingCreated && ev.Booking != nil:
		b := ev.Booking
		day := b.DayLabel
		if day == "" {
			day = model.WeekdayLabel(b.Day)
		}
		return fmt.Sprintf("[%s] Booking | booking_id=%d | teacher=%q (id=%d) | slot=%s %s | client=%q | phone=%s\n",
			ev.OccurredAt, b.BookingID, b.TeacherName, b.TeacherID, day, b.Time, b.ClientName, b.ClientPhone), nil
	case ev.Type == TypeRequestCreated && ev.Request != nil:
		r := ev.Request
		return fmt.Sprintf("[%s] Request | request_id=%d | goal=%q | weektime=%q | client=%q | phone=%s\n",
			ev.OccurredAt, r.RequestID, r.Goal, r.WeekTime, r.ClientName, r.ClientPhone), nil
	}
	return "", fmt.Errorf("unsupported event %q", ev.Type)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
