package memory

import (
	"context"
	"sync"

	"github.com/definehq/define-agent/llm"
)

// ConversationManager keeps session history for the lifetime of the
// process. Each agent run is a fresh process, so there is no durable
// store behind it — the map exists so multi-turn runs within one
// process share context.
type ConversationManager struct {
	mu       sync.Mutex
	sessions map[string]*Conversation
	maxMsgs  int
}

// NewConversationManager creates a new conversation manager
func NewConversationManager(maxMsgs int) *ConversationManager {
	return &ConversationManager{
		sessions: make(map[string]*Conversation),
		maxMsgs:  maxMsgs,
	}
}

// LoadSession loads previous conversation messages for a session
func (cm *ConversationManager) LoadSession(ctx context.Context, sessionID string) *Conversation {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	session, ok := cm.sessions[sessionID]
	if !ok {
		return &Conversation{ID: sessionID}
	}

	// Copy so callers can append without racing the stored history
	out := &Conversation{ID: session.ID}
	out.Messages = append(out.Messages, session.Messages...)
	return out
}

// SaveSession saves the conversation messages for a session
func (cm *ConversationManager) SaveSession(ctx context.Context, conversation *Conversation) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	// Trim messages to respect max session limit
	conversation.Messages = cm.trimForSession(conversation.Messages)
	cm.sessions[conversation.ID] = conversation
	return nil
}

// trimForSession keeps the last maxMsgs "user" messages and any number of
// "assistant" (and optional "tool") messages that follow them.
// If there are fewer than maxMsgs user messages total, it returns msgs unchanged.
func (cm *ConversationManager) trimForSession(msgs []llm.Message) []llm.Message {
	if cm.maxMsgs <= 0 || len(msgs) == 0 {
		return []llm.Message{}
	}

	// Walk backward and find the boundary index: the position right after the
	// (maxMsgs+1)-th user from the end. Everything after boundary is kept.
	usersSeen := 0
	start := 0 // default: keep all if we don't exceed maxMsgs users
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" && !msgs[i].IsToolResult {
			usersSeen++
			if usersSeen == cm.maxMsgs {
				start = i
				break
			}
		}
	}

	return msgs[start:]
}

// GetMaxMessages returns the maximum number of messages allowed in a session
func (cm *ConversationManager) GetMaxMessages() int {
	return cm.maxMsgs
}
