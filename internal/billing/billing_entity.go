package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

type Invoice struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string            `gorm:"column:invoice_number;type:varchar(20);not null;uniqueIndex:uq_invoice_number"`
	ParentID      uuid.UUID         `gorm:"column:parent_id;type:uuid;not null;index"`
	ChildID       uuid.UUID         `gorm:"column:child_id;type:uuid;not null;index"`
	PeriodStart   time.Time         `gorm:"column:period_start;type:date;not null"`
	PeriodEnd     time.Time         `gorm:"column:period_end;type:date;not null"`
	Month         int               `gorm:"column:month;not null"`
	Year          int               `gorm:"column:year;not null"`
	Amount        float64           `gorm:"column:amount;not null"`
	TaxAmount     float64           `gorm:"column:tax_amount;not null"`
	TotalAmount   float64           `gorm:"column:total_amount;not null"`
	Status        string            `gorm:"column:status;type:varchar(20);not null;default:pending"`
	DueDate       time.Time         `gorm:"column:due_date;type:date;not null"`
	PaymentMethod *string           `gorm:"column:payment_method;type:varchar(50)"`
	TransactionID *string           `gorm:"column:transaction_id;type:varchar(100)"`
	PaymentDate   *time.Time        `gorm:"column:payment_date;type:timestamptz"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"column:deleted_at;index"`
	LineItems     []InvoiceLineItem `gorm:"foreignKey:InvoiceID"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLineItem rows are written once with the invoice and never updated.
type InvoiceLineItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID   uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	Position    int       `gorm:"column:position;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Amount      float64   `gorm:"column:amount;not null"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`
	Hours       float64   `gorm:"column:hours"`
}

func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// isAllowedStatusTransition encodes the invoice lifecycle: nothing returns to
// pending, and nothing leaves paid except overdue/cancelled administrative
// moves.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusPaid || targetStatus == StatusOverdue || targetStatus == StatusCancelled
	case StatusPaid:
		return targetStatus == StatusOverdue || targetStatus == StatusCancelled
	default:
		return false
	}
}
