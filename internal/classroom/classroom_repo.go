package classroom

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cr *Classroom) error
	FindAll(ctx context.Context) ([]Classroom, error)
	FindByID(ctx context.Context, id string) (*Classroom, error)
	FindByAssignedTeacher(ctx context.Context, teacherID string) (*Classroom, error)
	RosterChildIDs(ctx context.Context, classroomID string) ([]string, error)
	CountEnrolled(ctx context.Context, classroomID string) (int64, error)
	Update(ctx context.Context, cr *Classroom) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cr *Classroom) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Classroom, error) {
	var classrooms []Classroom
	err := r.db.WithContext(ctx).Order("name ASC").Find(&classrooms).Error
	return classrooms, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Classroom, error) {
	var cr Classroom
	err := r.db.WithContext(ctx).First(&cr, "id = ?", id).Error
	return &cr, err
}

func (r *repository) FindByAssignedTeacher(ctx context.Context, teacherID string) (*Classroom, error) {
	var cr Classroom
	err := r.db.WithContext(ctx).
		First(&cr, "assigned_teacher_id = ?", teacherID).Error
	return &cr, err
}

func (r *repository) RosterChildIDs(ctx context.Context, classroomID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("children").
		Where("classroom_id = ?", classroomID).
		Where("deleted_at IS NULL").
		Pluck("id::text", &ids).Error
	return ids, err
}

func (r *repository) CountEnrolled(ctx context.Context, classroomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("children").
		Where("classroom_id = ?", classroomID).
		Where("is_active = ?", true).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, cr *Classroom) error {
	return r.db.WithContext(ctx).Save(cr).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Classroom{}, "id = ?", id).Error
}
