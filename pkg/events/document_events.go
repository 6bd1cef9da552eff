package events

import "time"

const (
	DocumentIngestedType = "DOCUMENT_INGESTED"
	DocumentUpdatedType  = "DOCUMENT_UPDATED"
	DocumentDeletedType  = "DOCUMENT_DELETED"
	DocumentsGroupedType = "DOCUMENTS_GROUPED"
)

// NewDocumentIngested is emitted after a document is stored with its
// resolved category.
func NewDocumentIngested(documentId, filename, category string) Event {
	return BaseEvent{
		Type: DocumentIngestedType,
		Data: map[string]interface{}{
			"document_id": documentId,
			"filename":    filename,
			"category":    category,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentUpdated(documentId, filename string) Event {
	return BaseEvent{
		Type: DocumentUpdatedType,
		Data: map[string]interface{}{
			"document_id": documentId,
			"filename":    filename,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentDeleted(documentId, filename string) Event {
	return BaseEvent{
		Type: DocumentDeletedType,
		Data: map[string]interface{}{
			"document_id": documentId,
			"filename":    filename,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentsGrouped(runId string, groupCount int) Event {
	return BaseEvent{
		Type: DocumentsGroupedType,
		Data: map[string]interface{}{
			"run_id":      runId,
			"group_count": groupCount,
		},
		OccurredAt: time.Now(),
	}
}
