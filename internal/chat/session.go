package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/abdalla1234567890/chatbot/internal/agent"
	"github.com/abdalla1234567890/chatbot/internal/apiclient"
	"github.com/abdalla1234567890/chatbot/internal/i18n"
)

// State is the controller position between user actions. Exactly one state
// holds at a time; there are no auxiliary flags.
type State int

const (
	StateIdle State = iota
	StateAwaitingReply
	StateAwaitingLocation
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. The stored content keeps the location
// marker; it is stripped only for display.
type Message struct {
	Role    Role
	Content string
}

// Display returns the content with the location marker removed.
func (m Message) Display() string {
	return strings.TrimSpace(strings.ReplaceAll(m.Content, agent.AskLocationMarker, ""))
}

// Sentinel results of Send. Both mean "nothing happened": empty input and
// sends while a request is in flight are dropped, not queued.
var (
	ErrEmptyMessage = errors.New("empty message")
	ErrBusy         = errors.New("request already in flight")
)

// SendFunc issues one assistant request: the new message plus the prior
// transcript in the flat prefixed wire format.
type SendFunc func(ctx context.Context, message string, history []string) (*apiclient.ChatResult, error)

// Session is one user's conversation. All methods are safe for concurrent
// use; at most one assistant request is in flight at a time and later sends
// are rejected rather than queued.
type Session struct {
	mu         sync.Mutex
	state      State
	transcript []Message
	send       SendFunc
	lang       string
}

// NewSession seeds the transcript with the synthesized greeting. No network
// call is made for the greeting.
func NewSession(lang, userName string, send SendFunc) *Session {
	return &Session{
		state: StateIdle,
		transcript: []Message{
			{Role: RoleAssistant, Content: i18n.Tf(lang, "greeting", userName)},
		},
		send: send,
		lang: lang,
	}
}

// State returns the current controller state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AwaitingLocation reports whether the location picker should be shown.
func (s *Session) AwaitingLocation() bool {
	return s.State() == StateAwaitingLocation
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// history renders the transcript in the wire format: the greeting and every
// later turn as prefixed flat lines. Callers must hold s.mu.
func (s *Session) history() []string {
	out := make([]string, 0, len(s.transcript))
	for _, m := range s.transcript {
		switch m.Role {
		case RoleUser:
			out = append(out, "العميل: "+m.Content)
		case RoleAssistant:
			out = append(out, "البائع: "+m.Content)
		}
	}
	return out
}

// Send runs one user turn. Empty input returns ErrEmptyMessage and an
// in-flight request returns ErrBusy, both without touching the transcript.
// Unauthorized errors from the backend propagate to the caller so it can
// tear the whole login session down; every other failure is absorbed into a
// synthesized assistant error message.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state == StateAwaitingReply {
		s.mu.Unlock()
		return ErrBusy
	}
	// The user message is appended optimistically and never rolled back;
	// failures append an error message after it instead.
	history := s.history()
	s.transcript = append(s.transcript, Message{Role: RoleUser, Content: text})
	s.state = StateAwaitingReply
	s.mu.Unlock()

	result, err := s.send(ctx, text, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			s.state = StateIdle
			return err
		}
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			s.transcript = append(s.transcript, Message{Role: RoleAssistant, Content: apiErr.Detail})
		} else {
			s.transcript = append(s.transcript, Message{Role: RoleAssistant, Content: i18n.T(s.lang, "connection_error")})
		}
		s.state = StateIdle
		return nil
	}

	s.transcript = append(s.transcript, Message{Role: RoleAssistant, Content: result.Reply})
	if strings.Contains(result.Reply, agent.AskLocationMarker) {
		s.state = StateAwaitingLocation
	} else {
		s.state = StateIdle
	}
	return nil
}
