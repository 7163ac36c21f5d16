package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInvoiceCreated  = "invoice_created"
	TypePaymentReceived = "payment_received"
)

// ReferenceID plus Type keeps event replays from producing duplicate
// rows when the consumer reprocesses a partition.
type Notification struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_notification_event"`
	Type        string    `gorm:"column:type;type:varchar(40);not null;uniqueIndex:uq_notification_event"`
	ReferenceID string    `gorm:"column:reference_id;type:varchar(100);not null;uniqueIndex:uq_notification_event"`
	Title       string    `gorm:"column:title;type:varchar(200);not null"`
	Body        string    `gorm:"column:body;type:text;not null"`
	IsRead      bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
