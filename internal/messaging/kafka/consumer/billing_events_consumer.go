package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-daycare/internal/events"
	"go-daycare/internal/notification"
	notificationerrors "go-daycare/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeInvoiceCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.invoice_created")
	log.Info("invoice created consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("invoice created consumer stopped")
				return
			}
			log.Error("fetch invoice created message failed", zap.Error(err))
			continue
		}

		var event events.InvoiceCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode invoice_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			UserID:      event.ParentID,
			Type:        notification.TypeInvoiceCreated,
			ReferenceID: event.InvoiceID,
			Title:       fmt.Sprintf("Invoice %s issued", event.InvoiceNumber),
			Body:        fmt.Sprintf("A new invoice of %.2f is due on %s.", event.TotalAmount, event.DueDate),
		})
		if err != nil {
			if errors.Is(err, notificationerrors.ErrDuplicateNotification) {
				log.Warn("notification already exists for invoice, skipping",
					zap.String("invoice_id", event.InvoiceID),
					zap.String("parent_id", event.ParentID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create invoice notification failed",
				zap.String("invoice_id", event.InvoiceID),
				zap.String("parent_id", event.ParentID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit invoice created message failed", zap.Error(err))
			continue
		}

		log.Info("notification created from invoice_created event",
			zap.String("invoice_id", event.InvoiceID),
			zap.String("parent_id", event.ParentID),
		)
	}
}

func ConsumePaymentReceived(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payment_received")
	log.Info("payment received consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payment received consumer stopped")
				return
			}
			log.Error("fetch payment received message failed", zap.Error(err))
			continue
		}

		var event events.PaymentReceivedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payment_received event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			UserID:      event.ParentID,
			Type:        notification.TypePaymentReceived,
			ReferenceID: event.InvoiceID,
			Title:       fmt.Sprintf("Payment received for invoice %s", event.InvoiceNumber),
			Body:        fmt.Sprintf("Your payment of %.2f via %s has been confirmed.", event.TotalAmount, event.PaymentMethod),
		})
		if err != nil {
			if errors.Is(err, notificationerrors.ErrDuplicateNotification) {
				log.Warn("notification already exists for payment, skipping",
					zap.String("invoice_id", event.InvoiceID),
					zap.String("parent_id", event.ParentID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create payment notification failed",
				zap.String("invoice_id", event.InvoiceID),
				zap.String("parent_id", event.ParentID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payment received message failed", zap.Error(err))
			continue
		}

		log.Info("notification created from payment_received event",
			zap.String("invoice_id", event.InvoiceID),
			zap.String("parent_id", event.ParentID),
		)
	}
}
