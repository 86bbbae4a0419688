package entity

import "time"

// Service is a clinic service (facial, laser, ...). Names are unique.
type Service struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Service) TableName() string {
	return "services"
}
