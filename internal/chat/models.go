package chat

import "time"

// User is one row per platform user the bot has seen. Counters accumulate
// across the user's lifetime; rows are never deleted.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	DisplayName  string    `gorm:"type:varchar(128)" json:"display_name"`
	IsBot        bool      `gorm:"not null;default:false" json:"is_bot"`
	MessageCount int64     `gorm:"not null;default:0" json:"message_count"`
	MentionCount int64     `gorm:"not null;default:0" json:"mention_count"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
}

func (User) TableName() string { return "users" }

// Message is one immutable log row, written once for each inbound user
// message and once for each outbound reply.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	GuildID   string    `gorm:"type:varchar(32);index" json:"guild_id"`
	ChannelID string    `gorm:"type:varchar(32);not null;index:idx_messages_channel_ts,priority:1" json:"channel_id"`
	AuthorID  string    `gorm:"type:varchar(32);index" json:"author_id"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null;index:idx_messages_channel_ts,priority:2" json:"timestamp"`
}

func (Message) TableName() string { return "messages" }
