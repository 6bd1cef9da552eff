package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename        string         `gorm:"type:varchar(255);not null;index"`
	Content         string         `gorm:"type:text;not null"`
	Summary         string         `gorm:"type:text"`
	Category        string         `gorm:"type:varchar(50);index"`
	PersonalityCode string         `gorm:"type:varchar(10);index"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
