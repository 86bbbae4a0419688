package repository

import (
	"clinic-booking-bot/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByName(db *gorm.DB, name string) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
}
