// Package store keeps every entity of the service in process memory.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/zhouzirui/folio/backend/internal/metrics"
	"github.com/zhouzirui/folio/backend/internal/model/chat"
	"github.com/zhouzirui/folio/backend/internal/model/contact"
	"github.com/zhouzirui/folio/backend/internal/model/user"
)

// ErrUsernameTaken is returned when a user with the same username exists.
var ErrUsernameTaken = errors.New("username already exists")

// Store exposes entity persistence to services and HTTP handlers.
type Store interface {
	CreateUser(ctx context.Context, username, password string) (user.User, error)
	GetUser(ctx context.Context, id int64) (user.User, bool)
	GetUserByUsername(ctx context.Context, username string) (user.User, bool)

	CreateContactMessage(ctx context.Context, msg contact.NewMessage) contact.Message
	ListContactMessages(ctx context.Context) []contact.Message
	GetContactMessage(ctx context.Context, id int64) (contact.Message, bool)

	CreateChatMode(ctx context.Context, mode chat.NewMode) chat.Mode
	ListChatModes(ctx context.Context) []chat.Mode
	GetChatMode(ctx context.Context, id int64) (chat.Mode, bool)
	GetChatModeByName(ctx context.Context, name string) (chat.Mode, bool)
	GetDefaultChatMode(ctx context.Context) (chat.Mode, bool)

	CreateChatMessage(ctx context.Context, msg chat.NewMessage) chat.Message
	ListChatMessages(ctx context.Context, sessionID string) []chat.Message
}

// Option customises a MemoryStore.
type Option func(*MemoryStore)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithModes creates the given modes, in order, when the store is built.
func WithModes(modes []chat.NewMode) Option {
	return func(s *MemoryStore) {
		s.seed = modes
	}
}

// MemoryStore implements Store with slices guarded by a single lock. Slices
// keep creation order, which several queries depend on.
type MemoryStore struct {
	mu   sync.RWMutex
	now  func() time.Time
	seed []chat.NewMode

	users    []user.User
	contacts []contact.Message
	modes    []chat.Mode
	messages []chat.Message

	userSeq    int64
	contactSeq int64
	modeSeq    int64
	messageSeq int64
}

// NewMemoryStore returns an empty store, or one preloaded with modes when
// WithModes is given.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(s)
	}
	for _, mode := range s.seed {
		s.CreateChatMode(context.Background(), mode)
	}
	s.seed = nil
	return s
}

// CreateUser stores a new user unless the username is already taken.
func (s *MemoryStore) CreateUser(_ context.Context, username, password string) (user.User, error) {
	defer metrics.ObserveStoreOperation("create_user", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return user.User{}, ErrUsernameTaken
		}
	}

	s.userSeq++
	u := user.User{ID: s.userSeq, Username: username, Password: password}
	s.users = append(s.users, u)
	return u, nil
}

// GetUser looks up a user by identifier.
func (s *MemoryStore) GetUser(_ context.Context, id int64) (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

// GetUserByUsername looks up a user by exact username.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return user.User{}, false
}

// CreateContactMessage stores an already validated contact form submission.
func (s *MemoryStore) CreateContactMessage(_ context.Context, in contact.NewMessage) contact.Message {
	defer metrics.ObserveStoreOperation("create_contact_message", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contactSeq++
	msg := contact.Message{
		ID:        s.contactSeq,
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	s.contacts = append(s.contacts, msg)
	return msg
}

// ListContactMessages returns contact messages in creation order.
func (s *MemoryStore) ListContactMessages(_ context.Context) []contact.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]contact.Message, 0, len(s.contacts)), s.contacts...)
}

// GetContactMessage looks up a contact message by identifier.
func (s *MemoryStore) GetContactMessage(_ context.Context, id int64) (contact.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, msg := range s.contacts {
		if msg.ID == id {
			return msg, true
		}
	}
	return contact.Message{}, false
}

// CreateChatMode stores a mode. Several modes may be flagged default, or none.
func (s *MemoryStore) CreateChatMode(_ context.Context, in chat.NewMode) chat.Mode {
	defer metrics.ObserveStoreOperation("create_chat_mode", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.modeSeq++
	mode := chat.Mode{
		ID:          s.modeSeq,
		Name:        in.Name,
		Description: in.Description,
		Persona:     in.Persona,
		Icon:        in.Icon,
		AccentColor: in.AccentColor,
		IsDefault:   chat.Flag(in.IsDefault),
		CreatedAt:   s.now(),
	}
	s.modes = append(s.modes, mode)
	return mode
}

// ListChatModes returns a snapshot of all modes in creation order.
func (s *MemoryStore) ListChatModes(_ context.Context) []chat.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]chat.Mode, 0, len(s.modes)), s.modes...)
}

// GetChatMode looks up a mode by identifier.
func (s *MemoryStore) GetChatMode(_ context.Context, id int64) (chat.Mode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mode := range s.modes {
		if mode.ID == id {
			return mode, true
		}
	}
	return chat.Mode{}, false
}

// GetChatModeByName matches the whole name, ignoring case.
func (s *MemoryStore) GetChatModeByName(_ context.Context, name string) (chat.Mode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mode := range s.modes {
		if strings.EqualFold(mode.Name, name) {
			return mode, true
		}
	}
	return chat.Mode{}, false
}

// GetDefaultChatMode returns the first mode flagged default, falling back to
// the earliest created mode. It reports false only when no modes exist.
func (s *MemoryStore) GetDefaultChatMode(_ context.Context) (chat.Mode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.modes) == 0 {
		return chat.Mode{}, false
	}
	for _, mode := range s.modes {
		if mode.IsDefault {
			return mode, true
		}
	}
	return s.modes[0], true
}

// CreateChatMessage stores a chat message. Missing metadata is stored as an
// empty map.
func (s *MemoryStore) CreateChatMessage(_ context.Context, in chat.NewMessage) chat.Message {
	defer metrics.ObserveStoreOperation("create_chat_message", time.Now())

	metadata := cloneMetadata(in.Metadata)
	if metadata == nil {
		metadata = make(map[string]any)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messageSeq++
	msg := chat.Message{
		ID:        s.messageSeq,
		SessionID: in.SessionID,
		Content:   in.Content,
		IsBot:     in.IsBot,
		Mode:      in.Mode,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}
	s.messages = append(s.messages, msg)
	return copyMessage(msg)
}

// ListChatMessages returns the messages of one session ordered by creation
// time. Messages with equal timestamps keep their insertion order.
func (s *MemoryStore) ListChatMessages(_ context.Context, sessionID string) []chat.Message {
	s.mu.RLock()
	out := make([]chat.Message, 0)
	for _, msg := range s.messages {
		if msg.SessionID == sessionID {
			out = append(out, copyMessage(msg))
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b chat.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

func copyMessage(msg chat.Message) chat.Message {
	msg.Metadata = cloneMetadata(msg.Metadata)
	return msg
}

// cloneMetadata copies the maps and slices that decoded JSON is made of, so
// nested values are never shared with callers.
func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMetadata(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
