package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupedDocument struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupName string         `gorm:"type:varchar(100);not null;index"`
	Content   string         `gorm:"type:text;not null"`
	RunId     uuid.UUID      `gorm:"type:uuid;not null;index"` // grouping run this row belongs to
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (GroupedDocument) TableName() string {
	return "grouped_documents"
}
