package child

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Child struct {
	ID                    uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ParentID              uuid.UUID      `gorm:"column:parent_id;type:uuid;not null;index"`
	ClassroomID           *uuid.UUID     `gorm:"column:classroom_id;type:uuid;index"`
	FirstName             string         `gorm:"column:first_name;type:varchar(100);not null"`
	LastName              string         `gorm:"column:last_name;type:varchar(100);not null"`
	DateOfBirth           time.Time      `gorm:"column:date_of_birth;type:date;not null"`
	Allergies             string         `gorm:"column:allergies;type:text"`
	MedicalNotes          string         `gorm:"column:medical_notes;type:text"`
	EmergencyContactName  string         `gorm:"column:emergency_contact_name;type:varchar(255)"`
	EmergencyContactPhone string         `gorm:"column:emergency_contact_phone;type:varchar(30)"`
	EnrollmentDate        time.Time      `gorm:"column:enrollment_date;type:date"`
	IsActive              bool           `gorm:"column:is_active;default:true"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Child) TableName() string {
	return "children"
}
