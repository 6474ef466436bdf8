package models

import (
	"time"

	"gorm.io/gorm"
)

type Basic struct {
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
