package classroom

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Classroom struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_classroom_name"`
	AgeGroup          string         `gorm:"column:age_group;type:varchar(50)"`
	Capacity          int            `gorm:"column:capacity;not null;default:20"`
	AssignedTeacherID *uuid.UUID     `gorm:"column:assigned_teacher_id;type:uuid;index"`
	IsActive          bool           `gorm:"column:is_active;default:true"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
