package services

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/models"
	"storefront/pkg/mailer"

	"github.com/sirupsen/logrus"
)

// MailSender sends a rendered e-mail.
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// MailNotifier e-mails receipts directly.
type MailNotifier struct {
	sender MailSender
}

// NewMailNotifier creates a MailNotifier.
func NewMailNotifier(sender MailSender) *MailNotifier {
	return &MailNotifier{sender: sender}
}

// Notify sends the receipt.
func (n *MailNotifier) Notify(ctx context.Context, receipt models.Receipt) error {
	return n.sender.Send(ctx, mailer.Message{
		To:      receipt.To,
		Subject: receipt.Subject,
		Body:    receipt.Body,
	})
}

// Publisher puts a JSON message on a queue.
type Publisher interface {
	PublishJSON(v interface{}) error
}

// QueueNotifier hands receipts to a queue consumer.
type QueueNotifier struct {
	publisher Publisher
}

// NewQueueNotifier creates a QueueNotifier.
func NewQueueNotifier(publisher Publisher) *QueueNotifier {
	return &QueueNotifier{publisher: publisher}
}

// Notify publishes the receipt.
func (n *QueueNotifier) Notify(_ context.Context, receipt models.Receipt) error {
	if err := n.publisher.PublishJSON(receipt); err != nil {
		return fmt.Errorf("failed to queue receipt: %w", err)
	}
	return nil
}

// ReceiptConsumer returns a queue handler that mails each queued receipt.
func ReceiptConsumer(sender MailSender) func(body []byte) error {
	notifier := NewMailNotifier(sender)
	return func(body []byte) error {
		var receipt models.Receipt
		if err := json.Unmarshal(body, &receipt); err != nil {
			return fmt.Errorf("failed to decode receipt: %w", err)
		}
		return notifier.Notify(context.Background(), receipt)
	}
}

// LogNotifier only logs receipts. It is used when no mail server is configured.
type LogNotifier struct{}

// Notify logs the receipt.
func (LogNotifier) Notify(_ context.Context, receipt models.Receipt) error {
	logrus.WithFields(logrus.Fields{
		"email":   receipt.To,
		"subject": receipt.Subject,
	}).Info("Mail is not configured, receipt not sent")
	return nil
}
