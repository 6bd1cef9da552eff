package memory

import (
	"time"

	"fin-advisor-be/pkg/rag/conversation"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps live conversation state in process
// memory. Expired sessions fall back to their durable snapshot.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(state *conversation.State) {
	r.cache.Set(state.SessionID, state, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(sessionID string) (*conversation.State, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*conversation.State), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
