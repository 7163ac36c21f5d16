package billing

import (
	"context"
	"database/sql"

	"go-daycare/internal/authz"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, invoice *Invoice) error
	FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the gorm session onto tx so invoice writes commit and roll
// back together with the outbox row the service stages on the same tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, invoice *Invoice) error {
	// Line items are created with the invoice through the association.
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Invoice, error) {
	if filter.DeniesAll() {
		return []Invoice{}, nil
	}

	db := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC")

	// Payments are only ever parent-scoped; classroom filters do not apply.
	if filter != nil && filter.ParentID != "" {
		db = db.Where("parent_id = ?", filter.ParentID)
	}

	var invoices []Invoice
	err := db.Find(&invoices).Error
	return invoices, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "id = ?", id).Error
	return &invoice, err
}

// FindByIDForUpdate takes a row lock so concurrent payments serialize on the
// status guard. Only meaningful on a tx-bound repository.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "id = ?", id).Error
	return &invoice, err
}

func (r *repository) Update(ctx context.Context, invoice *Invoice) error {
	return r.db.WithContext(ctx).Omit("LineItems").Save(invoice).Error
}
