package drive

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	docMimeType    = "application/vnd.google-apps.document"

	// Drive folder metadata key holding the incremental-export bound.
	watermarkKey = "lastExport"

	// Minimum spacing between API calls, to stay under the per-user
	// Drive quota without per-call backoff bookkeeping.
	callSpacing = 120 * time.Millisecond
)

// GoogleStore implements DocumentStore against the Drive and Docs APIs.
type GoogleStore struct {
	files  *drive.FilesService
	perms  *drive.PermissionsService
	docs   *docs.DocumentsService
	logger *zap.Logger

	lastCall time.Time
}

// NewGoogleStore builds a store authenticated by a service-account
// credentials file.
func NewGoogleStore(ctx context.Context, credentialsFile string, logger *zap.Logger) (*GoogleStore, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", credentialsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveScope, docs.DocumentsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	ts := option.WithTokenSource(creds.TokenSource)

	driveSvc, err := drive.NewService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	docsSvc, err := docs.NewService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}

	return &GoogleStore{
		files:  driveSvc.Files,
		perms:  driveSvc.Permissions,
		docs:   docsSvc.Documents,
		logger: logger,
	}, nil
}

// pace enforces the minimum spacing between API calls.
func (s *GoogleStore) pace(ctx context.Context) error {
	wait := callSpacing - time.Since(s.lastCall)
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.lastCall = time.Now()
	return nil
}

// escapeQuery escapes a string literal for a Drive search query.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func (s *GoogleStore) CreateOrGetFolder(ctx context.Context, name, parentID string) (string, error) {
	if err := s.pace(ctx); err != nil {
		return "", err
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), folderMimeType, escapeQuery(parentID))
	list, err := s.files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for folder %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	if err := s.pace(ctx); err != nil {
		return "", err
	}
	folder, err := s.files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	s.logger.Info("Created Drive folder",
		zap.String("name", name), zap.String("id", folder.Id))
	return folder.Id, nil
}

// findDocument returns the ID of the named document in the folder, or ""
// when absent.
func (s *GoogleStore) findDocument(ctx context.Context, name, folderID string) (string, error) {
	if err := s.pace(ctx); err != nil {
		return "", err
	}
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), docMimeType, escapeQuery(folderID))
	list, err := s.files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for document %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (s *GoogleStore) DocumentExists(ctx context.Context, name, folderID string) (bool, error) {
	id, err := s.findDocument(ctx, name, folderID)
	if err != nil {
		return false, err
	}
	return id != "", nil
}

func (s *GoogleStore) UploadDocument(ctx context.Context, name, folderID, text string) error {
	docID, err := s.findDocument(ctx, name, folderID)
	if err != nil {
		return err
	}

	if docID == "" {
		if err := s.pace(ctx); err != nil {
			return err
		}
		// Drive converts text/plain media into a Google Doc.
		_, err := s.files.Create(&drive.File{
			Name:     name,
			MimeType: docMimeType,
			Parents:  []string{folderID},
		}).Media(strings.NewReader(text)).Fields("id").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to create document %q: %w", name, err)
		}
		s.logger.Info("Created document", zap.String("name", name))
		return nil
	}

	if err := s.pace(ctx); err != nil {
		return err
	}
	_, err = s.docs.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Text:                 text,
				EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to document %q: %w", name, err)
	}
	s.logger.Info("Appended to document", zap.String("name", name))
	return nil
}

func (s *GoogleStore) FolderPermissions(ctx context.Context, folderID string) ([]Permission, error) {
	if err := s.pace(ctx); err != nil {
		return nil, err
	}
	list, err := s.perms.List(folderID).
		Fields("permissions(id, emailAddress, role, type)").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions on %s: %w", folderID, err)
	}

	out := make([]Permission, 0, len(list.Permissions))
	for _, p := range list.Permissions {
		out = append(out, Permission{
			ID:    p.Id,
			Email: p.EmailAddress,
			Role:  p.Role,
			Type:  p.Type,
		})
	}
	return out, nil
}

func (s *GoogleStore) ShareFolder(ctx context.Context, folderID, email string, notify bool) error {
	if err := s.pace(ctx); err != nil {
		return err
	}
	_, err := s.perms.Create(folderID, &drive.Permission{
		Type:         "user",
		Role:         "reader",
		EmailAddress: email,
	}).SendNotificationEmail(notify).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to share %s with %s: %w", folderID, email, err)
	}
	return nil
}

func (s *GoogleStore) RevokeFolderAccess(ctx context.Context, folderID, permissionID string) error {
	if err := s.pace(ctx); err != nil {
		return err
	}
	if err := s.perms.Delete(folderID, permissionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to revoke permission %s on %s: %w", permissionID, folderID, err)
	}
	return nil
}

func (s *GoogleStore) Watermark(ctx context.Context, folderID string) (string, error) {
	if err := s.pace(ctx); err != nil {
		return "", err
	}
	f, err := s.files.Get(folderID).Fields("appProperties").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read watermark on %s: %w", folderID, err)
	}
	return f.AppProperties[watermarkKey], nil
}

func (s *GoogleStore) SetWatermark(ctx context.Context, folderID, value string) error {
	if err := s.pace(ctx); err != nil {
		return err
	}
	_, err := s.files.Update(folderID, &drive.File{
		AppProperties: map[string]string{watermarkKey: value},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to store watermark on %s: %w", folderID, err)
	}
	s.logger.Debug("Stored watermark",
		zap.String("folder", folderID), zap.String("value", value))
	return nil
}
