package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-daycare/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByChildAndDate(ctx context.Context, childID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Attendance, error)
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindRange(ctx context.Context, childID string, start, end time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the gorm session onto tx so attendance writes commit and
// roll back together with the outbox row staged on the same tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByChildAndDate(ctx context.Context, childID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]Attendance, error) {
	if filter.DeniesAll() {
		return []Attendance{}, nil
	}

	db := r.db.WithContext(ctx).Order("attendance_date DESC, check_in DESC")

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

	var rows []Attendance
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindRange(ctx context.Context, childID string, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Where("attendance_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
