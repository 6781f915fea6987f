package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/doughepi/grain/core/database"
	"github.com/doughepi/grain/core/ingest"
	"github.com/doughepi/grain/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SourceName is the source tag stamped on message items.
const SourceName = "Messages"

// appleEpoch is the reference date of chat database timestamps.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

const messagesQuery = `
SELECT
	handle.id AS user,
	message.text AS text,
	message.date AS date,
	handle.service AS service,
	message.destination_caller_id AS account,
	message.is_from_me AS is_from_me
FROM message
JOIN handle ON message.handle_id = handle.ROWID
ORDER BY message.ROWID`

// Message is one row of a conversation.
type Message struct {
	User     string `json:"user"`
	Text     string `json:"text"`
	Date     string `json:"date"`
	Service  string `json:"service"`
	Account  string `json:"account"`
	IsFromMe bool   `json:"is_from_me"`
}

// Conversation is every message exchanged with one handle.
type Conversation struct {
	User     string
	Messages []Message
}

// Source syncs one document per conversation from a chat database.
type Source struct {
	dbPath string
	logger *zap.Logger
}

// New creates a messages source reading the database at dbPath.
func New(dbPath string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{dbPath: dbPath, logger: logger}
}

// Name implements ingest.Source.
func (s *Source) Name() string {
	return SourceName
}

// Fetch implements ingest.Source.
func (s *Source) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	conversations, err := s.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]ingest.Candidate, 0, len(conversations))
	for _, c := range conversations {
		s.logger.Debug("Processing conversation", zap.String("user", c.User), zap.Int("messages", len(c.Messages)))
		data, err := json.Marshal(c.Messages)
		if err != nil {
			return nil, fmt.Errorf("failed to encode conversation with %s: %w", c.User, err)
		}
		candidates = append(candidates, ingest.Candidate{
			Key:       c.User,
			Data:      data,
			Extension: "json",
			Label:     c.User,
			Metadata:  ingest.Metadata{{Key: "user", Value: c.User}},
		})
	}
	return candidates, nil
}

// Conversations reads every message and groups them per handle, in the order each
// handle first appears.
func (s *Source) Conversations(ctx context.Context) ([]Conversation, error) {
	if _, err := os.Stat(s.dbPath); err != nil {
		return nil, fmt.Errorf("chat database %s: %w", s.dbPath, err)
	}

	db, err := database.OpenReadOnly(s.dbPath)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	rows, err := readRows(ctx, db)
	if err != nil {
		return nil, err
	}
	return group(rows), nil
}

func readRows(ctx context.Context, db *gorm.DB) ([]Message, error) {
	var raw []map[string]any
	if err := db.WithContext(ctx).Raw(messagesQuery).Scan(&raw).Error; err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, row := range raw {
		messages = append(messages, Message{
			User:     utils.ToString(row["user"]),
			Text:     utils.ToString(row["text"]),
			Date:     FormatDate(utils.ToInt64(row["date"])),
			Service:  utils.ToString(row["service"]),
			Account:  utils.ToString(row["account"]),
			IsFromMe: utils.ToBool(row["is_from_me"]),
		})
	}
	return messages, nil
}

func group(messages []Message) []Conversation {
	var conversations []Conversation
	index := make(map[string]int)
	for _, m := range messages {
		i, ok := index[m.User]
		if !ok {
			i = len(conversations)
			index[m.User] = i
			conversations = append(conversations, Conversation{User: m.User})
		}
		conversations[i].Messages = append(conversations[i].Messages, m)
	}
	return conversations
}

// FormatDate converts a chat database timestamp to "2006-01-02 15:04:05" UTC.
// Recent databases store nanoseconds since 2001-01-01; older ones store seconds.
func FormatDate(raw int64) string {
	if raw == 0 {
		return ""
	}
	seconds := raw
	if raw > 1e11 || raw < -1e11 {
		seconds = raw / int64(time.Second)
	}
	return appleEpoch.Add(time.Duration(seconds) * time.Second).Format(time.DateTime)
}
