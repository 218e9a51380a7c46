// Package drive persists transcripts as Google Docs in per-conversation
// Drive folders, and keeps the incremental-export watermark in folder
// metadata.
package drive

import "context"

// Permission is one access grant on a folder.
type Permission struct {
	ID    string
	Email string
	Role  string // "owner", "writer", "reader"
	Type  string // "user", "group", "domain", "anyone"
}

// DocumentStore is the storage surface the exporter writes through.
//
//go:generate go tool mockgen -source=$GOFILE -destination=store_mocks.go -package=drive
type DocumentStore interface {
	// CreateOrGetFolder finds a folder by name under parentID, creating it
	// if absent, and returns its ID.
	CreateOrGetFolder(ctx context.Context, name, parentID string) (string, error)

	// DocumentExists reports whether a document with this name already
	// lives in the folder.
	DocumentExists(ctx context.Context, name, folderID string) (bool, error)

	// UploadDocument writes text into the named document in the folder.
	// A new document is created when none exists; otherwise the text is
	// appended to the end of the existing one.
	UploadDocument(ctx context.Context, name, folderID, text string) error

	// FolderPermissions lists the access grants on a folder.
	FolderPermissions(ctx context.Context, folderID string) ([]Permission, error)

	// ShareFolder grants a user read access to a folder, optionally
	// sending a notification email.
	ShareFolder(ctx context.Context, folderID, email string, notify bool) error

	// RevokeFolderAccess removes an access grant by permission ID.
	RevokeFolderAccess(ctx context.Context, folderID, permissionID string) error

	// Watermark reads the stored incremental-export bound for a folder.
	// Absent watermarks return "" with no error.
	Watermark(ctx context.Context, folderID string) (string, error)

	// SetWatermark stores the incremental-export bound on a folder.
	SetWatermark(ctx context.Context, folderID, value string) error
}
