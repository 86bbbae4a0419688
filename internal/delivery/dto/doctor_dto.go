package dto

import "time"

// Request DTOs

type CreateDoctorRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Specialty string `json:"specialty" validate:"required,min=2,max=100"`
}

// Response DTOs

type DoctorResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
