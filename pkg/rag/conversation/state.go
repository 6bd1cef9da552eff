package conversation

import (
	"fin-advisor-be/pkg/llm"
)

// State is the ordered message history of one session. It is exclusive
// to that session; callers pass it by reference and persist it only
// through an explicit snapshot.
type State struct {
	SessionID string
	Messages  []llm.Message
}

func NewState(sessionID string) *State {
	return &State{SessionID: sessionID}
}

func (s *State) Append(role, content string) {
	s.Messages = append(s.Messages, llm.Message{Role: role, Content: content})
}

// History returns a copy so callers cannot reorder the state.
func (s *State) History() []llm.Message {
	out := make([]llm.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

func (s *State) Len() int {
	return len(s.Messages)
}
