package activity

import (
	"context"

	"go-daycare/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Activity) error
	FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Activity, error)
	FindByChild(ctx context.Context, childID string) ([]Activity, error)
	FindByID(ctx context.Context, id string) (*Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Activity, error) {
	if filter.DeniesAll() {
		return []Activity{}, nil
	}

	db := r.db.WithContext(ctx).Order("occurred_at DESC")

	if filter != nil {
		if filter.ParentID != "" {
			db = db.Where("child_id IN (?)",
				r.db.Table("children").Select("id").Where("parent_id = ?", filter.ParentID))
		}
		if filter.ClassroomID != "" {
			db = db.Where("child_id IN (?)",
				r.db.Table("children").Select("id").Where("classroom_id = ?", filter.ClassroomID))
		}
	}

	var rows []Activity
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByChild(ctx context.Context, childID string) ([]Activity, error) {
	var rows []Activity
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("occurred_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Activity, error) {
	var a Activity
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}
