package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a booked visit. Doctor and service are captured as
// display strings at booking time, deliberately not foreign keys: later
// catalog edits must not rewrite existing appointments. DateGregorian is
// the canonical YYYY-MM-DD filter key; DateJalali is the user-visible
// rendering of the same day.
//
// Rows are insert-only. There is no cancellation flow, and nothing may
// update an appointment after creation.
type Appointment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	FullName      string    `gorm:"type:varchar(255);not null" json:"full_name"`
	DoctorLabel   string    `gorm:"type:varchar(255);not null" json:"doctor_label"`
	ServiceName   string    `gorm:"type:varchar(255);not null" json:"service_name"`
	DateGregorian string    `gorm:"type:varchar(10);not null;index" json:"date_gregorian"`
	DateJalali    string    `gorm:"type:varchar(64);not null" json:"date_jalali"`
	TimeSlot      string    `gorm:"type:varchar(5);not null" json:"time_slot"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
