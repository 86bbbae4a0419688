package entity

import "time"

// Doctor is a clinic doctor shown in the booking menus.
type Doctor struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialty string    `gorm:"type:varchar(100);not null" json:"specialty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Label renders the doctor the way menus and appointments show it.
func (d *Doctor) Label() string {
	return d.Name + " — " + d.Specialty
}
