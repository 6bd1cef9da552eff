package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestDocumentRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
}

type IngestDocumentResponse struct {
	Id       *uuid.UUID `json:"id,omitempty"`
	Filename string     `json:"filename"`
	Outcome  string     `json:"outcome"` // created | duplicate | rejected
	Category string     `json:"category,omitempty"`
}

// IngestFolderRequest points at a server-side directory of PDF files.
type IngestFolderRequest struct {
	Path string `json:"path" validate:"required"`
}

type IngestFolderResponse struct {
	Results []IngestDocumentResponse `json:"results"`
}

type DocumentResponse struct {
	Id              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	Content         string    `json:"content"`
	Summary         string    `json:"summary,omitempty"`
	Category        string    `json:"category"`
	PersonalityCode string    `json:"personality_code,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SemanticSearchRequest struct {
	Query     string   `json:"query" validate:"required"`
	Certainty *float64 `json:"certainty,omitempty" validate:"omitempty,gte=0"`
	Limit     int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50"`
}

type SemanticSearchResponse struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Summary   string    `json:"summary,omitempty"`
	Category  string    `json:"category"`
	Chunk     string    `json:"chunk"`
	Certainty float64   `json:"certainty"`
}

type GroupedDocumentResponse struct {
	GroupName string    `json:"group_name"`
	Content   string    `json:"content"`
	RunId     uuid.UUID `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
}
