package converter

import (
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:        service.ID,
		Name:      service.Name,
		CreatedAt: service.CreatedAt,
	}
}

// ServicesToResponses converts a slice of Service entities to DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		responses[i] = *ServiceToResponse(&service)
	}
	return responses
}
