package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent  = "present"
	StatusAbsent   = "absent"
	StatusSick     = "sick"
	StatusVacation = "vacation"
)

type Attendance struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ChildID        uuid.UUID      `gorm:"column:child_id;type:uuid;not null;uniqueIndex:uq_attendance_child_date"`
	AttendanceDate time.Time      `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_child_date"`
	CheckIn        *time.Time     `gorm:"column:check_in;type:timestamptz"`
	CheckOut       *time.Time     `gorm:"column:check_out;type:timestamptz"`
	Minutes        *int           `gorm:"column:minutes"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:present"`
	MealsServed    int            `gorm:"column:meals_served;not null;default:0"`
	NapMinutes     *int           `gorm:"column:nap_minutes"`
	Notes          *string        `gorm:"column:notes;type:text"`
	RecordedBy     *uuid.UUID     `gorm:"column:recorded_by;type:uuid"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func isKnownStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusSick, StatusVacation:
		return true
	}
	return false
}
