package agent

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
)

// Welcome opens every conversation.
const Welcome = "你好！我是你的極光之旅 AI 小助手。無論是行程規劃、天氣查詢還是極光攝影技巧，我都能為你解答。想問點什麼嗎？"

// ErrBusy is returned when a message is submitted while the previous one is
// still waiting for its answer. Submissions are not queued.
var ErrBusy = errors.New("assistant is still answering")

// Role tells who wrote a message.
type Role int

const (
	User Role = iota
	Bot
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Bot:
		return "model"
	default:
		return "unknown"
	}
}

// Message is a line of the conversation.
type Message struct {
	Role Role
	Text string
}

// Chat is a conversation with the assistant's guide. It is not persisted.
type Chat struct {
	assistant *Assistant

	mu       sync.Mutex
	messages []Message
	pending  bool
}

// NewChat opens a conversation with the welcome message.
func NewChat(a *Assistant) *Chat {
	return &Chat{
		assistant: a,
		messages:  []Message{{Role: Bot, Text: Welcome}},
	}
}

// Messages returns the conversation so far.
func (c *Chat) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Pending reports whether a submission is waiting for its answer.
func (c *Chat) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Submit sends text and blocks until the answer, which is also appended to
// the conversation. Blank text is ignored and returns an Idle result.
func (c *Chat) Submit(ctx context.Context, text string) (Result[string], error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result[string]{}, nil
	}
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return Result[string]{State: Pending}, ErrBusy
	}
	c.pending = true
	c.messages = append(c.messages, Message{Role: User, Text: text})
	c.mu.Unlock()

	r := c.assistant.Ask(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
	c.messages = append(c.messages, Message{Role: Bot, Text: r.Value})
	return r, nil
}
