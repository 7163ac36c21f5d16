package billing

import (
	"fmt"
	"math"
	"time"

	billingerrors "go-daycare/internal/billing/errors"

	"github.com/google/uuid"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

const attendanceStatusPresent = "present"

// BillableChild is the slice of a child the calculator needs.
type BillableChild struct {
	ID       uuid.UUID
	ParentID uuid.UUID
}

// AttendanceLine is one attendance row as supplied by the attendance store.
// Minutes is nil until the child has been checked out.
type AttendanceLine struct {
	Date    time.Time
	Status  string
	Minutes *int
}

// ComputeChildInvoice builds the invoice for one child over a billing period.
// Only present, checked-out attendance qualifies; a child with no qualifying
// rows yields (nil, nil): no invoice, not an error. The full-day flat rate
// applies per attendance day independently, never to the period total.
func ComputeChildInvoice(
	child BillableChild,
	records []AttendanceLine,
	periodStart, periodEnd, dueDate time.Time,
	rates RateSchedule,
) (*Invoice, error) {
	if periodEnd.Before(periodStart) {
		return nil, billingerrors.ErrInvalidPeriod
	}

	var (
		items    []InvoiceLineItem
		subtotal float64
	)

	for _, rec := range records {
		if rec.Status != attendanceStatusPresent || rec.Minutes == nil {
			continue
		}

		hours := float64(*rec.Minutes) / 60
		amount := hours * rates.HourlyRate
		if hours >= rates.FullDayHours {
			amount = rates.FullDayRate
		}

		items = append(items, InvoiceLineItem{
			Position:    len(items) + 1,
			Description: fmt.Sprintf("Attendance on %s", rec.Date.Format("2006-01-02")),
			Amount:      amount,
			Quantity:    1,
			Hours:       round2(hours),
		})
		subtotal += amount
	}

	if len(items) == 0 {
		return nil, nil
	}

	// Tax and total are each rounded on their own; rounding the total alone
	// produces different cents.
	taxAmount := round2(subtotal * rates.TaxRate)
	totalAmount := round2(subtotal + taxAmount)

	return &Invoice{
		ParentID:    child.ParentID,
		ChildID:     child.ID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Month:       int(periodStart.Month()),
		Year:        periodStart.Year(),
		Amount:      round2(subtotal),
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
		Status:      StatusPending,
		DueDate:     dueDate,
		LineItems:   items,
	}, nil
}

// ApplyDiscount reduces amount by a percentage or fixed value, floored at 0.
func ApplyDiscount(amount float64, kind string, value float64) float64 {
	var discounted float64
	switch kind {
	case DiscountPercentage:
		discounted = amount - amount*value/100
	case DiscountFixed:
		discounted = amount - value
	default:
		return amount
	}

	if discounted < 0 {
		return 0
	}
	return round2(discounted)
}

// FormatInvoiceNumber renders the zero-padded display number for a sequence
// value obtained from the counter store.
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
