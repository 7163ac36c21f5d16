package events

import "time"

const InvoiceCreatedTopic = "daycare.billing.invoice.created.v1"

type InvoiceCreatedEvent struct {
	EventType     string    `json:"event_type"`
	InvoiceID     string    `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	ParentID      string    `json:"parent_id"`
	ChildID       string    `json:"child_id"`
	TotalAmount   float64   `json:"total_amount"`
	DueDate       string    `json:"due_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}
