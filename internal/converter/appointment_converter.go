package converter

import (
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:            appointment.ID,
		UserID:        appointment.UserID,
		FullName:      appointment.FullName,
		DoctorLabel:   appointment.DoctorLabel,
		ServiceName:   appointment.ServiceName,
		DateGregorian: appointment.DateGregorian,
		DateJalali:    appointment.DateJalali,
		TimeSlot:      appointment.TimeSlot,
		CreatedAt:     appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
