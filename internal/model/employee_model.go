package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName   string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Department string         `gorm:"type:varchar(100);not null;index" json:"department"`
	Salary     float64        `gorm:"not null" json:"salary"`
	Age        int            `gorm:"not null" json:"age"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
