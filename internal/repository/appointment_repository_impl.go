package repository

import (
	"errors"

	"clinic-booking-bot/internal/domain/entity"
	domainRepo "clinic-booking-bot/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

// FindByDate returns appointments for a canonical date in insertion order.
// Callers needing a time-sorted view must sort explicitly.
func (r *appointmentRepository) FindByDate(db *gorm.DB, dateGregorian string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("date_gregorian = ?", dateGregorian).
		Order("created_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorSlot(db *gorm.DB, doctorLabel, dateGregorian, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("doctor_label = ? AND date_gregorian = ? AND time_slot = ?", doctorLabel, dateGregorian, timeSlot).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}
