package child

import (
	"context"
	"database/sql"

	"go-daycare/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Child) error
	FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Child, error)
	FindByID(ctx context.Context, id string) (*Child, error)
	FindActive(ctx context.Context) ([]Child, error)
	Update(ctx context.Context, c *Child) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the gorm session onto tx so child writes commit and roll
// back together with the outbox row staged on the same tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, c *Child) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Child, error) {
	if filter.DeniesAll() {
		return []Child{}, nil
	}

	db := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC")

	if filter != nil {
		if filter.ParentID != "" {
			db = db.Where("parent_id = ?", filter.ParentID)
		}
		if filter.ClassroomID != "" {
			db = db.Where("classroom_id = ?", filter.ClassroomID)
		}
	}

	var children []Child
	err := db.Find(&children).Error
	return children, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Child, error) {
	var c Child
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindActive(ctx context.Context) ([]Child, error) {
	var children []Child
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&children).Error
	return children, err
}

func (r *repository) Update(ctx context.Context, c *Child) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Child{}, "id = ?", id).Error
}
