package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        int64     `json:"user_id"`
	FullName      string    `json:"full_name"`
	DoctorLabel   string    `json:"doctor_label"`
	ServiceName   string    `json:"service_name"`
	DateGregorian string    `json:"date_gregorian"`
	DateJalali    string    `json:"date_jalali"`
	TimeSlot      string    `json:"time_slot"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
