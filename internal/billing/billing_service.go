package billing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"
	billingerrors "go-daycare/internal/billing/errors"
	"go-daycare/internal/events"
	"go-daycare/internal/messaging/kafka"
	"go-daycare/internal/shared/contextutil"
	"go-daycare/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const invoiceAllCacheKey = "invoices:all"

// ChildStore supplies the children eligible for invoicing. Satisfied by the
// child module.
type ChildStore interface {
	FindActiveBilling(ctx context.Context) ([]BillableChild, error)
}

// AttendanceStore supplies the attendance rows that feed the calculator.
// Satisfied by the attendance module.
type AttendanceStore interface {
	FindCompletedPresent(ctx context.Context, childID uuid.UUID, start, end time.Time) ([]AttendanceLine, error)
}

type Service interface {
	GenerateInvoices(ctx context.Context, req GenerateInvoicesRequest) ([]InvoiceResponse, error)
	GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, id string, filter *authz.ScopeFilter) (InvoiceResponse, error)
	ProcessPayment(ctx context.Context, id string, filter *authz.ScopeFilter, req ProcessPaymentRequest) (InvoiceResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (InvoiceResponse, error)
	PreviewDiscount(req PreviewDiscountRequest) (DiscountPreviewResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	children    ChildStore
	attendance  AttendanceStore
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
	rates       RateSchedule
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	children ChildStore,
	attendance AttendanceStore,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger *zap.Logger,
	rates RateSchedule,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		children:    children,
		attendance:  attendance,
		outbox:      outbox,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      logger.Named("billing.service"),
		rates:       rates,
	}
}

// GenerateInvoices runs the billing pass for one period. Each child is
// invoiced in its own transaction together with its outbox event, so a
// failure partway through keeps the invoices already committed and stops
// the run there.
func (s *service) GenerateInvoices(
	ctx context.Context,
	req GenerateInvoicesRequest,
) ([]InvoiceResponse, error) {
	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return nil, billingerrors.ErrInvalidDateFormat
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return nil, billingerrors.ErrInvalidDateFormat
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, billingerrors.ErrInvalidDateFormat
	}
	if periodEnd.Before(periodStart) {
		return nil, billingerrors.ErrInvalidPeriod
	}

	log := contextutil.GetLogger(ctx, s.logger)

	children, err := s.children.FindActiveBilling(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("billing run started",
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
		zap.Int("children", len(children)),
	)

	responses := make([]InvoiceResponse, 0, len(children))

	for _, child := range children {
		records, err := s.attendance.FindCompletedPresent(ctx, child.ID, periodStart, periodEnd)
		if err != nil {
			log.Error("billing run halted: attendance lookup failed",
				zap.String("child_id", child.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}

		invoice, err := ComputeChildInvoice(child, records, periodStart, periodEnd, dueDate, s.rates)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			continue
		}

		if err := s.createInvoiceTx(ctx, invoice); err != nil {
			log.Error("billing run halted: invoice creation failed",
				zap.String("child_id", child.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}

		responses = append(responses, mapToResponse(*invoice))
	}

	s.invalidateListCache(ctx)

	log.Info("billing run finished", zap.Int("invoices", len(responses)))

	return responses, nil
}

func (s *service) createInvoiceTx(ctx context.Context, invoice *Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	seq, err := s.counterRepo.GetNextValue(ctx, counter.TypeInvoice)
	if err != nil {
		return err
	}

	invoice.ID = uuid.New()
	invoice.InvoiceNumber = FormatInvoiceNumber(seq)

	if err := qtx.Create(ctx, invoice); err != nil {
		return mapRepositoryError(err)
	}

	event := events.InvoiceCreatedEvent{
		EventType:     "invoice.created",
		InvoiceID:     invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		ParentID:      invoice.ParentID.String(),
		ChildID:       invoice.ChildID.String(),
		TotalAmount:   invoice.TotalAmount,
		DueDate:       invoice.DueDate.Format("2006-01-02"),
		OccurredAt:    time.Now().UTC(),
	}

	if err := s.enqueueEvent(ctx, tx, "invoice", invoice.ID.String(), events.InvoiceCreatedTopic, event.EventType, event); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) GetAll(
	ctx context.Context,
	filter *authz.ScopeFilter,
) ([]InvoiceResponse, error) {
	// Scoped reads hit the database directly; only the facility-wide list
	// is worth caching.
	if filter != nil {
		invoices, err := s.repo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(invoices), nil
	}

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, invoiceAllCacheKey).Result()
		if err == nil {
			var resp []InvoiceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(invoiceAllCacheKey, func() (interface{}, error) {
		invoices, err := s.repo.FindAll(ctx, nil)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(invoices)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, invoiceAllCacheKey, jsonData, 10*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]InvoiceResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	id string,
	filter *authz.ScopeFilter,
) (InvoiceResponse, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, billingerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if err := checkOwnership(invoice, filter); err != nil {
		return InvoiceResponse{}, err
	}

	return mapToResponse(*invoice), nil
}

// ProcessPayment moves a pending invoice to paid. Paying an invoice twice is
// reported as already processed and leaves the stored payment untouched.
func (s *service) ProcessPayment(
	ctx context.Context,
	id string,
	filter *authz.ScopeFilter,
	req ProcessPaymentRequest,
) (InvoiceResponse, error) {
	if req.PaymentMethod == "" {
		return InvoiceResponse{}, billingerrors.ErrPaymentMethodRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Locked read: two concurrent pays serialize here, the second sees paid.
	invoice, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, billingerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if err := checkOwnership(invoice, filter); err != nil {
		return InvoiceResponse{}, err
	}

	if invoice.Status == StatusPaid {
		return InvoiceResponse{}, billingerrors.ErrAlreadyProcessed
	}
	if invoice.Status != StatusPending {
		return InvoiceResponse{}, billingerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	invoice.Status = StatusPaid
	invoice.PaymentMethod = &req.PaymentMethod
	invoice.TransactionID = req.TransactionID
	invoice.PaymentDate = &now

	if err := qtx.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, err
	}

	event := events.PaymentReceivedEvent{
		EventType:     "payment.received",
		InvoiceID:     invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		ParentID:      invoice.ParentID.String(),
		TotalAmount:   invoice.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		OccurredAt:    now,
	}

	if err := s.enqueueEvent(ctx, tx, "invoice", invoice.ID.String(), events.PaymentReceivedTopic, event.EventType, event); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.invalidateListCache(ctx)

	contextutil.GetLogger(ctx, s.logger).Info("payment processed",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("payment_method", req.PaymentMethod),
	)

	return mapToResponse(*invoice), nil
}

func (s *service) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (InvoiceResponse, error) {
	if !isKnownStatus(req.Status) {
		return InvoiceResponse{}, billingerrors.ErrInvalidStatusTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	invoice, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, billingerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if invoice.Status == StatusPaid && req.Status == StatusPaid {
		return InvoiceResponse{}, billingerrors.ErrAlreadyProcessed
	}
	if !isAllowedStatusTransition(invoice.Status, req.Status) {
		return InvoiceResponse{}, billingerrors.ErrInvalidStatusTransition
	}

	invoice.Status = req.Status

	if err := qtx.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.invalidateListCache(ctx)

	return mapToResponse(*invoice), nil
}

func (s *service) PreviewDiscount(req PreviewDiscountRequest) (DiscountPreviewResponse, error) {
	if req.Kind != DiscountPercentage && req.Kind != DiscountFixed {
		return DiscountPreviewResponse{}, billingerrors.ErrInvalidDiscountKind
	}

	return DiscountPreviewResponse{
		Amount:     req.Amount,
		Kind:       req.Kind,
		Value:      req.Value,
		Discounted: ApplyDiscount(req.Amount, req.Kind, req.Value),
	}, nil
}

func (s *service) enqueueEvent(
	ctx context.Context,
	tx *sql.Tx,
	aggregateType, aggregateID, topic, eventType string,
	payload any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}

	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, invoiceAllCacheKey).Err(); err != nil {
		s.logger.Warn("invoice cache invalidation failed", zap.Error(err))
	}
}

func checkOwnership(invoice *Invoice, filter *authz.ScopeFilter) error {
	if filter == nil || filter.ParentID == "" {
		return nil
	}
	if invoice.ParentID.String() != filter.ParentID {
		return authzerrors.ErrNotYourInvoice
	}
	return nil
}

func isKnownStatus(status string) bool {
	switch status {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func mapToResponse(invoice Invoice) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(invoice.LineItems))
	for _, item := range invoice.LineItems {
		items = append(items, LineItemResponse{
			Description: item.Description,
			Amount:      item.Amount,
			Quantity:    item.Quantity,
			Hours:       item.Hours,
		})
	}

	resp := InvoiceResponse{
		ID:            invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		ParentID:      invoice.ParentID.String(),
		ChildID:       invoice.ChildID.String(),
		PeriodStart:   invoice.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     invoice.PeriodEnd.Format("2006-01-02"),
		Month:         invoice.Month,
		Year:          invoice.Year,
		Amount:        invoice.Amount,
		TaxAmount:     invoice.TaxAmount,
		TotalAmount:   invoice.TotalAmount,
		Status:        invoice.Status,
		DueDate:       invoice.DueDate.Format("2006-01-02"),
		PaymentMethod: invoice.PaymentMethod,
		TransactionID: invoice.TransactionID,
		LineItems:     items,
	}

	if invoice.PaymentDate != nil {
		formatted := invoice.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &formatted
	}

	return resp
}

func mapToListResponse(invoices []Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, mapToResponse(invoice))
	}
	return responses
}
