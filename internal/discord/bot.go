package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/yourusername/discord-ai-bot/internal/chat"
)

// Bot wires the Discord gateway to the chat service. discordgo dispatches
// events to a handler one at a time, so at most one message is in flight
// unless a handler spawns goroutines; this one does not.
type Bot struct {
	session *discordgo.Session
	svc     *chat.Service
}

func New(token string, svc *chat.Service) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{session: session, svc: svc}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

// Open connects to the gateway and starts the event loop.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[discord.Bot] connected as %s", r.User.Username)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	me := s.State.User
	if me == nil || m.Author == nil {
		return
	}
	if m.Author.ID == me.ID || m.Author.Bot {
		return
	}

	in := chat.Inbound{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		BotID:      me.ID,
		BotName:    me.Username,
		Content:    StripMention(m.Content, me.ID),
		Mentioned:  mentionsUser(m, me.ID),
	}

	res, err := b.svc.HandleMessage(context.Background(), in)
	if err != nil {
		log.Printf("[discord.Bot.onMessageCreate] handle channel=%s err=%v", m.ChannelID, err)
		return
	}
	if res.Reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, res.Reply); err != nil {
		// Delivery failures are logged only; no retry.
		log.Printf("[discord.Bot.onMessageCreate] send reply channel=%s err=%v", m.ChannelID, err)
	}
}

func mentionsUser(m *discordgo.MessageCreate, userID string) bool {
	for _, u := range m.Mentions {
		if u != nil && u.ID == userID {
			return true
		}
	}
	return false
}

// StripMention removes the addressing prefix forms <@id> and <@!id> and
// trims the remainder.
func StripMention(content, userID string) string {
	content = strings.ReplaceAll(content, "<@"+userID+">", "")
	content = strings.ReplaceAll(content, "<@!"+userID+">", "")
	return strings.TrimSpace(content)
}
