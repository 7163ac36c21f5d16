package medical

import (
	"context"

	"go-daycare/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *MedicalAlert) error
	FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]MedicalAlert, error)
	FindByChild(ctx context.Context, childID string) ([]MedicalAlert, error)
	FindByID(ctx context.Context, id string) (*MedicalAlert, error)
	Update(ctx context.Context, m *MedicalAlert) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *MedicalAlert) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]MedicalAlert, error) {
	if filter.DeniesAll() {
		return []MedicalAlert{}, nil
	}

	db := r.db.WithContext(ctx).Order("severity DESC, created_at DESC")

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

	var rows []MedicalAlert
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByChild(ctx context.Context, childID string) ([]MedicalAlert, error) {
	var rows []MedicalAlert
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Where("is_active = ?", true).
		Order("severity DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*MedicalAlert, error) {
	var m MedicalAlert
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) Update(ctx context.Context, m *MedicalAlert) error {
	return r.db.WithContext(ctx).Save(m).Error
}
