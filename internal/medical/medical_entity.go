package medical

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeAllergy    = "allergy"
	TypeMedication = "medication"
	TypeCondition  = "condition"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

type MedicalAlert struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ChildID      uuid.UUID      `gorm:"column:child_id;type:uuid;not null;index;uniqueIndex:uq_medical_alert"`
	AlertType    string         `gorm:"column:alert_type;type:varchar(30);not null;uniqueIndex:uq_medical_alert"`
	Title        string         `gorm:"column:title;type:varchar(255);not null;uniqueIndex:uq_medical_alert"`
	Severity     string         `gorm:"column:severity;type:varchar(20);not null;default:low"`
	Description  string         `gorm:"column:description;type:text"`
	Instructions string         `gorm:"column:instructions;type:text"`
	IsActive     bool           `gorm:"column:is_active;default:true"`
	CreatedBy    uuid.UUID      `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (MedicalAlert) TableName() string {
	return "medical_alerts"
}

func isKnownAlertType(t string) bool {
	switch t {
	case TypeAllergy, TypeMedication, TypeCondition:
		return true
	}
	return false
}

func isKnownSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
