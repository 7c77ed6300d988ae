package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yourusername/discord-ai-bot/internal/chat"
)

// Connect opens (creating if absent) the sqlite file and migrates the
// schema. AutoMigrate is idempotent, so repeated startups are safe.
func Connect(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}

	// sqlite does not tolerate uncoordinated concurrent writers; keep a
	// single connection so all storage access is serialized.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&chat.User{}, &chat.Message{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return gdb, nil
}
