package people

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// RefSource enumerates the workspace for reference-file generation.
type RefSource interface {
	AllConversations(ctx context.Context) ([]Conversation, error)
	AllUsers(ctx context.Context) ([]Person, error)
}

// WriteRefFiles regenerates channels.json and people.json in dir from the
// live workspace. Export, share, and opt-out decisions already present in
// the files are carried over so regeneration never re-enables anything.
func WriteRefFiles(ctx context.Context, src RefSource, dir string, logger *zap.Logger) error {
	channelsPath := filepath.Join(dir, "channels.json")
	peoplePath := filepath.Join(dir, "people.json")

	existing := loadAllConversations(channelsPath, logger)
	convs, err := src.AllConversations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}
	for i, c := range convs {
		prev, ok := existing[c.ID]
		if !ok {
			continue
		}
		convs[i].DisplayName = prev.DisplayName
		convs[i].Export = prev.Export
		convs[i].Share = prev.Share
		convs[i].ShareMembers = prev.ShareMembers
		convs[i].BatchDir = prev.BatchDir
	}
	sort.Slice(convs, func(i, j int) bool { return convs[i].Title() < convs[j].Title() })
	if err := SaveConversations(channelsPath, convs); err != nil {
		return err
	}
	logger.Info("Wrote channels reference file",
		zap.String("path", channelsPath), zap.Int("count", len(convs)))

	prevPeople := LoadDirectory(peoplePath, logger)
	users, err := src.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	for i, u := range users {
		prev, ok := prevPeople.ByID(u.SlackID)
		if !ok {
			continue
		}
		users[i].NoNotifications = prev.NoNotifications
		users[i].NoShare = prev.NoShare
		if prev.DisplayName != "" {
			users[i].DisplayName = prev.DisplayName
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].DisplayName < users[j].DisplayName })
	if err := SavePeople(peoplePath, users); err != nil {
		return err
	}
	logger.Info("Wrote people reference file",
		zap.String("path", peoplePath), zap.Int("count", len(users)))
	return nil
}

// loadAllConversations reads every entry from the channels file, including
// disabled ones, keyed by ID. Missing or malformed files yield nothing.
func loadAllConversations(path string, logger *zap.Logger) map[string]Conversation {
	out := make(map[string]Conversation)
	data, err := os.ReadFile(path)
	if err != nil {
		return out
	}
	var cf channelsFile
	if err := json.Unmarshal(data, &cf); err != nil {
		logger.Warn("Ignoring malformed channels file during regeneration",
			zap.String("path", path), zap.Error(err))
		return out
	}
	for _, c := range cf.Channels {
		if c.ID != "" {
			out[c.ID] = c
		}
	}
	return out
}
