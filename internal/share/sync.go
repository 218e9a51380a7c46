package share

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/drive"
	"github.com/jflowers/slackfeeder-sub000/internal/export"
)

const (
	// Pause after this many permission changes to stay under Drive's
	// sharing quota.
	throttleEvery = 10
	throttlePause = time.Second
)

// Syncer applies recipient sets to Drive folders. The throttle counter
// spans folders so a run over many conversations still paces itself.
type Syncer struct {
	store  drive.DocumentStore
	logger *zap.Logger
	ops    int
}

func NewSyncer(store drive.DocumentStore, logger *zap.Logger) *Syncer {
	return &Syncer{store: store, logger: logger}
}

func (s *Syncer) throttle(ctx context.Context) error {
	s.ops++
	if s.ops%throttleEvery != 0 {
		return nil
	}
	s.logger.Debug("Pausing between permission changes", zap.Int("ops", s.ops))
	select {
	case <-time.After(throttlePause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncFolder makes the folder's user permissions match the recipient set:
// absent recipients are granted access, grants for emails no longer in the
// set are revoked. Owner grants are never touched. Individual failures are
// counted and logged but do not stop the sync.
func (s *Syncer) SyncFolder(ctx context.Context, folderID string, recipients map[string]bool, stats *export.Stats) error {
	perms, err := s.store.FolderPermissions(ctx, folderID)
	if err != nil {
		return err
	}

	current := make(map[string]drive.Permission)
	for _, p := range perms {
		if p.Type != "user" || p.Email == "" {
			continue
		}
		current[strings.ToLower(p.Email)] = p
	}

	for email, p := range current {
		if p.Role == "owner" {
			continue
		}
		if _, keep := recipients[email]; keep {
			continue
		}
		if err := s.store.RevokeFolderAccess(ctx, folderID, p.ID); err != nil {
			s.logger.Warn("Failed to revoke folder access",
				zap.String("folder", folderID), zap.String("email", email), zap.Error(err))
			stats.ShareFailed++
			continue
		}
		s.logger.Info("Revoked folder access",
			zap.String("folder", folderID), zap.String("email", email))
		if err := s.throttle(ctx); err != nil {
			return err
		}
	}

	for email, notify := range recipients {
		if _, have := current[email]; have {
			continue
		}
		if err := s.store.ShareFolder(ctx, folderID, email, notify); err != nil {
			s.logger.Warn("Failed to share folder",
				zap.String("folder", folderID), zap.String("email", email), zap.Error(err))
			stats.ShareFailed++
			continue
		}
		s.logger.Info("Shared folder",
			zap.String("folder", folderID), zap.String("email", email),
			zap.Bool("notify", notify))
		stats.Shared++
		if err := s.throttle(ctx); err != nil {
			return err
		}
	}

	return nil
}
