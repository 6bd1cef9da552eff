package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFilename struct {
	Filename string
}

func (s ByFilename) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("filename = ?", s.Filename)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByPersonalityCode struct {
	PersonalityCode string
}

func (s ByPersonalityCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("personality_code = ?", s.PersonalityCode)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByRunID struct {
	RunID uuid.UUID
}

func (s ByRunID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("run_id = ?", s.RunID)
}
