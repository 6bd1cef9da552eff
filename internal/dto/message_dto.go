package dto

import "github.com/google/uuid"

// PublishEmbedDocumentMessage is the payload queued for the embedding
// consumer after a document is stored.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
