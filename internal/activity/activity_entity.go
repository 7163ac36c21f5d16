package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeMeal     = "meal"
	TypeNap      = "nap"
	TypePlay     = "play"
	TypeLearning = "learning"
	TypeOutdoor  = "outdoor"
	TypeOther    = "other"
)

type Activity struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ChildID      uuid.UUID      `gorm:"column:child_id;type:uuid;not null;index"`
	ActivityType string         `gorm:"column:activity_type;type:varchar(30);not null"`
	Description  string         `gorm:"column:description;type:text;not null"`
	OccurredAt   time.Time      `gorm:"column:occurred_at;type:timestamptz;not null"`
	RecordedBy   uuid.UUID      `gorm:"column:recorded_by;type:uuid;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Activity) TableName() string {
	return "activities"
}

func isKnownActivityType(t string) bool {
	switch t {
	case TypeMeal, TypeNap, TypePlay, TypeLearning, TypeOutdoor, TypeOther:
		return true
	}
	return false
}
