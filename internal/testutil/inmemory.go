// Package testutil provides in-memory repository doubles for exercising
// store-facing logic without a database.
package testutil

import (
	"context"
	"math"
	"sort"
	"sync"

	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/repository/contract"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Factory is an in-memory unitofwork.RepositoryFactory. All returned
// units of work share the same backing slices.
type Factory struct {
	mu        sync.Mutex
	Documents []*entity.Document
	Embeds    []*entity.DocumentEmbedding
	Groups    []*entity.GroupedDocument
	Sessions  []*entity.ChatSession
	Messages  []*entity.ChatMessage
	Snapshots []*entity.ConversationSnapshot
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unit{f: f}
}

type unit struct {
	f *Factory
}

func (u *unit) Begin(ctx context.Context) error { return nil }
func (u *unit) Commit() error                   { return nil }
func (u *unit) Rollback() error                 { return nil }

func (u *unit) DocumentRepository() contract.DocumentRepository {
	return &documentRepo{f: u.f}
}

func (u *unit) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return &embeddingRepo{f: u.f}
}

func (u *unit) GroupedDocumentRepository() contract.GroupedDocumentRepository {
	return &groupedRepo{f: u.f}
}

func (u *unit) ChatSessionRepository() contract.ChatSessionRepository {
	return &sessionRepo{f: u.f}
}

func (u *unit) ChatMessageRepository() contract.ChatMessageRepository {
	return &messageRepo{f: u.f}
}

func (u *unit) ConversationSnapshotRepository() contract.ConversationSnapshotRepository {
	return &snapshotRepo{f: u.f}
}

// ---- documents ----

type documentRepo struct {
	f *Factory
}

func matchDocument(d *entity.Document, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return d.Id == s.ID
	case specification.ByIDs:
		for _, id := range s.IDs {
			if d.Id == id {
				return true
			}
		}
		return false
	case specification.ByFilename:
		return d.Filename == s.Filename
	case specification.ByCategory:
		return d.Category == s.Category
	case specification.ByPersonalityCode:
		return d.PersonalityCode == s.PersonalityCode
	default:
		// Ordering and paging are applied by the caller loops below.
		return true
	}
}

func limitFrom(specs []specification.Specification) int {
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			return p.Limit
		}
	}
	return 0
}

func (r *documentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *document
	r.f.Documents = append(r.f.Documents, &cp)
	return nil
}

func (r *documentRepo) Update(ctx context.Context, document *entity.Document) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i, d := range r.f.Documents {
		if d.Id == document.Id {
			cp := *document
			r.f.Documents[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.Documents[:0]
	for _, d := range r.f.Documents {
		if d.Id != id {
			kept = append(kept, d)
		}
	}
	r.f.Documents = kept
	return nil
}

func (r *documentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	docs, err := r.FindAll(ctx, specs...)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (r *documentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*entity.Document
	limit := limitFrom(specs)
	for _, d := range r.f.Documents {
		ok := true
		for _, spec := range specs {
			if !matchDocument(d, spec) {
				ok = false
				break
			}
		}
		if ok {
			cp := *d
			out = append(out, &cp)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *documentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, err := r.FindAll(ctx, specs...)
	return int64(len(docs)), err
}

// ---- embeddings ----

type embeddingRepo struct {
	f *Factory
}

func (r *embeddingRepo) Create(ctx context.Context, e *entity.DocumentEmbedding) error {
	return r.CreateBulk(ctx, []*entity.DocumentEmbedding{e})
}

func (r *embeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, e := range embeddings {
		cp := *e
		r.f.Embeds = append(r.f.Embeds, &cp)
	}
	return nil
}

func (r *embeddingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.Embeds[:0]
	for _, e := range r.f.Embeds {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	r.f.Embeds = kept
	return nil
}

func (r *embeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.Embeds[:0]
	for _, e := range r.f.Embeds {
		if e.DocumentId != documentId {
			kept = append(kept, e)
		}
	}
	r.f.Embeds = kept
	return nil
}

func (r *embeddingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentEmbedding, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *embeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*entity.DocumentEmbedding
	for _, e := range r.f.Embeds {
		ok := true
		for _, spec := range specs {
			if s, isDoc := spec.(specification.ByDocumentID); isDoc && e.DocumentId != s.DocumentID {
				ok = false
				break
			}
		}
		if ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *embeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// SearchSimilarWithScore ranks by true cosine similarity over the
// stored vectors, mirroring the pgvector query.
func (r *embeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if limit <= 0 {
		limit = 5
	}

	var scored []*contract.ScoredDocumentEmbedding
	for _, e := range r.f.Embeds {
		sim := cosineSimilarity(embedding, e.Values)
		if sim >= threshold {
			cp := *e
			scored = append(scored, &contract.ScoredDocumentEmbedding{Embedding: &cp, Similarity: sim})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ---- grouped documents ----

type groupedRepo struct {
	f *Factory
}

func (r *groupedRepo) CreateBulk(ctx context.Context, groups []*entity.GroupedDocument) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, g := range groups {
		cp := *g
		r.f.Groups = append(r.f.Groups, &cp)
	}
	return nil
}

func (r *groupedRepo) DeleteAll(ctx context.Context) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.Groups = nil
	return nil
}

func (r *groupedRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupedDocument, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*entity.GroupedDocument
	for _, g := range r.f.Groups {
		ok := true
		for _, spec := range specs {
			if s, isRun := spec.(specification.ByRunID); isRun && g.RunId != s.RunID {
				ok = false
				break
			}
		}
		if ok {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *groupedRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// ---- chat sessions ----

type sessionRepo struct {
	f *Factory
}

func matchSession(s *entity.ChatSession, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByID:
		return s.Id == v.ID
	case specification.SessionOwnedByUser:
		return s.UserId == v.UserID
	default:
		return true
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *session
	r.f.Sessions = append(r.f.Sessions, &cp)
	return nil
}

func (r *sessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i, s := range r.f.Sessions {
		if s.Id == session.Id {
			cp := *session
			r.f.Sessions[i] = &cp
		}
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.Sessions[:0]
	for _, s := range r.f.Sessions {
		if s.Id != id {
			kept = append(kept, s)
		}
	}
	r.f.Sessions = kept
	return nil
}

func (r *sessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *sessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*entity.ChatSession
	for _, s := range r.f.Sessions {
		ok := true
		for _, spec := range specs {
			if !matchSession(s, spec) {
				ok = false
				break
			}
		}
		if ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- chat messages ----

type messageRepo struct {
	f *Factory
}

func (r *messageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *message
	r.f.Messages = append(r.f.Messages, &cp)
	return nil
}

func (r *messageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.Messages[:0]
	for _, m := range r.f.Messages {
		if m.SessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.f.Messages = kept
	return nil
}

func (r *messageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*entity.ChatMessage
	for _, m := range r.f.Messages {
		ok := true
		for _, spec := range specs {
			if s, isSession := spec.(specification.ByChatSessionID); isSession && m.SessionId != s.ChatSessionID {
				ok = false
				break
			}
		}
		if ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *messageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// ---- conversation snapshots ----

type snapshotRepo struct {
	f *Factory
}

func (r *snapshotRepo) Upsert(ctx context.Context, snapshot *entity.ConversationSnapshot) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i, s := range r.f.Snapshots {
		if s.SessionId == snapshot.SessionId {
			cp := *snapshot
			cp.Id = s.Id
			r.f.Snapshots[i] = &cp
			return nil
		}
	}
	cp := *snapshot
	r.f.Snapshots = append(r.f.Snapshots, &cp)
	return nil
}

func (r *snapshotRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationSnapshot, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, s := range r.f.Snapshots {
		if s.SessionId == sessionId {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *snapshotRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.Snapshots[:0]
	for _, s := range r.f.Snapshots {
		if s.SessionId != sessionId {
			kept = append(kept, s)
		}
	}
	r.f.Snapshots = kept
	return nil
}
