package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/yourusername/discord-ai-bot/internal/ai"
)

// State names each step of handling one inbound event, so the
// ignored / generation-failed / replied outcomes are observable in tests
// without a live gateway connection.
type State string

const (
	StateReceived         State = "received"
	StateIgnored          State = "ignored"
	StateValidated        State = "validated"
	StateHistoryLoaded    State = "history-loaded"
	StateGenerated        State = "generated"
	StateGenerationFailed State = "generation-failed"
	StatePersisted        State = "persisted"
	StateReplied          State = "replied"
)

// Inbound is one platform message event, flattened by the delivery layer.
// Content arrives with the addressing prefix already stripped.
type Inbound struct {
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string
	BotID      string
	BotName    string
	Content    string
	Mentioned  bool
}

// Result reports the terminal state of one event. Reply is empty only when
// the event was ignored; the delivery layer sends it otherwise.
type Result struct {
	State State
	Reply string
}

const (
	fallbackReply = "Sorry, there was an error processing your request."

	generateTimeout = 30 * time.Second

	// Prompt size budget in bytes. History is shed oldest-first before the
	// new message text itself is cut.
	maxPromptChars  = 12000
	maxMessageChars = 4000
)

type Service struct {
	repo        *Repo
	provider    ai.Provider
	personality string
	window      int
}

func NewService(repo *Repo, provider ai.Provider, personality string, window int) *Service {
	if window <= 0 || window > 500 {
		window = 100
	}
	return &Service{repo: repo, provider: provider, personality: personality, window: window}
}

// HandleMessage runs one event through the pipeline:
// received -> validated -> history-loaded -> generated -> persisted.
// Storage failures are logged and skipped, never fatal to the event; the
// inbound user message is persisted before generation, so a failed model
// call still leaves the user's turn in history.
func (s *Service) HandleMessage(ctx context.Context, in Inbound) (*Result, error) {
	content := strings.TrimSpace(in.Content)
	if !in.Mentioned || content == "" {
		// Not addressed to the bot: no side effects at all.
		return &Result{State: StateIgnored}, nil
	}

	eventID := ulid.Make().String()

	if err := s.repo.RecordUserActivity(ctx, in.AuthorID, in.AuthorName, false, true); err != nil {
		log.Printf("[chat.Service.HandleMessage] event=%s record user activity err=%v", eventID, err)
	}
	inbound := &Message{
		GuildID:   in.GuildID,
		ChannelID: in.ChannelID,
		AuthorID:  in.AuthorID,
		Role:      "user",
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, inbound); err != nil {
		log.Printf("[chat.Service.HandleMessage] event=%s append inbound err=%v", eventID, err)
	}

	history, err := s.repo.RecentHistory(ctx, in.ChannelID, s.window)
	if err != nil {
		log.Printf("[chat.Service.HandleMessage] event=%s load history err=%v", eventID, err)
		history = nil
	}
	// The row written above is already the newest history entry; drop it so
	// the prompt carries the new message exactly once, as the user turn.
	if n := len(history); n > 0 && inbound.ID != 0 && history[n-1].ID == inbound.ID {
		history = history[:n-1]
	}

	msgs := s.buildPrompt(history, in.AuthorName, content)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	reply, err := s.generate(genCtx, msgs)
	if err != nil {
		log.Printf("[chat.Service.HandleMessage] event=%s generate err=%v", eventID, err)
		return &Result{State: StateGenerationFailed, Reply: fallbackReply}, nil
	}

	if err := s.repo.RecordUserActivity(ctx, in.BotID, in.BotName, true, false); err != nil {
		log.Printf("[chat.Service.HandleMessage] event=%s record bot activity err=%v", eventID, err)
	}
	outbound := &Message{
		GuildID:   in.GuildID,
		ChannelID: in.ChannelID,
		AuthorID:  in.BotID,
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, outbound); err != nil {
		log.Printf("[chat.Service.HandleMessage] event=%s append outbound err=%v", eventID, err)
	}

	return &Result{State: StatePersisted, Reply: reply}, nil
}

// generate calls the provider, retrying once on a transient failure.
func (s *Service) generate(ctx context.Context, msgs []ai.Message) (string, error) {
	reply, err := s.provider.Chat(ctx, msgs)
	if err != nil && errors.Is(err, ai.ErrTransient) {
		log.Printf("[chat.Service.generate] transient failure, retrying once: %v", err)
		reply, err = s.provider.Chat(ctx, msgs)
	}
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errors.New("empty completion")
	}
	return reply, nil
}

// buildPrompt assembles the structured prompt: system personality, prior
// turns in chronological order, then the new user turn. When the total
// exceeds the size budget, history is shed oldest-first; the message text
// is only cut once no history remains.
func (s *Service) buildPrompt(history []Message, authorName, content string) []ai.Message {
	system := fmt.Sprintf(
		"You are: %s\nYou will never admit to being an AI. Respond to %s in first person. Stay in character.",
		s.personality, authorName,
	)

	if len(content) > maxMessageChars {
		content = content[:maxMessageChars]
	}

	budget := maxPromptChars - len(system)
	historySize := 0
	for _, m := range history {
		historySize += len(m.Content)
	}
	for len(history) > 0 && historySize+len(content) > budget {
		historySize -= len(history[0].Content)
		history = history[1:]
	}
	if len(content) > budget && budget > 0 {
		content = content[:budget]
	}

	msgs := make([]ai.Message, 0, len(history)+2)
	msgs = append(msgs, ai.Message{Role: "system", Content: system})
	for _, m := range history {
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		msgs = append(msgs, ai.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: content})
	return msgs
}
