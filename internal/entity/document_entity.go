package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is a stored product description together with the metadata
// derived at ingestion time.
type Document struct {
	Id              uuid.UUID
	Filename        string
	Content         string
	Summary         string
	Category        string
	PersonalityCode string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DocumentEmbedding is one embedded chunk of a document's content.
type DocumentEmbedding struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	ChunkText  string
	Values     []float32
	CreatedAt  time.Time
}

// DocumentSearchResult pairs a document with its retrieval certainty,
// where certainty is 1 minus the cosine distance between the query and
// the best-matching chunk.
type DocumentSearchResult struct {
	Document  Document
	ChunkText string
	Certainty float64
}
