package repository

import (
	"clinic-booking-bot/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByDate(db *gorm.DB, dateGregorian string) ([]entity.Appointment, error)
	FindByDoctorSlot(db *gorm.DB, doctorLabel, dateGregorian, timeSlot string) (*entity.Appointment, error)
	Count(db *gorm.DB) (int64, error)
}
