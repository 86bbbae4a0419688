package dto

import "time"

// Request DTOs

type CreateServiceRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// Response DTOs

type ServiceResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
