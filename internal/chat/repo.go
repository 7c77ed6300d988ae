package chat

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// RecordUserActivity creates the user row on first sight, otherwise bumps
// message_count (always) and mention_count (only when mentioned) and
// refreshes display_name and last_seen. Single statement so the counters
// stay consistent without a read-modify-write.
func (r *Repo) RecordUserActivity(ctx context.Context, userID, displayName string, isBot, isMention bool) error {
	now := time.Now().UTC()
	mentionInc := int64(0)
	if isMention {
		mentionInc = 1
	}

	user := User{
		ID:           userID,
		DisplayName:  displayName,
		IsBot:        isBot,
		MessageCount: 1,
		MentionCount: mentionInc,
		FirstSeen:    now,
		LastSeen:     now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"display_name":  displayName,
			"is_bot":        isBot,
			"last_seen":     now,
			"message_count": gorm.Expr("message_count + 1"),
			"mention_count": gorm.Expr("mention_count + ?", mentionInc),
		}),
	}).Create(&user).Error
}

// AppendMessage inserts one immutable log row and fills in m.ID.
func (r *Repo) AppendMessage(ctx context.Context, m *Message) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// RecentHistory returns up to limit messages for a channel in chronological
// order (oldest -> newest). The query selects the newest rows DESC and the
// result is reversed before returning.
func (r *Repo) RecentHistory(ctx context.Context, channelID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	var msgs []Message
	if err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *Repo) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
