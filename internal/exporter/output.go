package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jflowers/slackfeeder-sub000/internal/export"
)

// FileRef describes a transcript written to the local output directory.
type FileRef struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
	Lines int    `json:"lines"`
}

// TranscriptWriter writes local transcript files, one per conversation.
type TranscriptWriter struct {
	dir string
}

func NewTranscriptWriter(dir string) (*TranscriptWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &TranscriptWriter{dir: dir}, nil
}

func (w *TranscriptWriter) Dir() string { return w.dir }

// WriteTranscript stores a conversation transcript under a sanitized
// filename and returns a reference to it.
func (w *TranscriptWriter) WriteTranscript(conversationName, content string) (FileRef, error) {
	name := export.SanitizeFileName(conversationName) + "_history.txt"
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return FileRef{}, fmt.Errorf("failed to write transcript %s: %w", path, err)
	}

	return FileRef{
		Path:  path,
		Name:  name,
		Bytes: int64(len(content)),
		Lines: strings.Count(content, "\n") + 1,
	}, nil
}

// docName builds the per-day document title for a conversation.
func docName(conversationName, dayKey string) string {
	return export.SanitizeFolderName(conversationName) + " slack messages " + dayKey
}

// docHeader builds the metadata block written at the top of a newly created
// document. Appends to an existing document never repeat it.
func docHeader(conversationName, dayKey string, now time.Time) string {
	return fmt.Sprintf("Conversation: %s\nDate: %s\nExported: %s\n\n",
		conversationName,
		export.FormatDayKey(dayKey),
		now.UTC().Format("2006-01-02 15:04:05 UTC"))
}

// chunkMarker labels one chunk of an oversized day.
func chunkMarker(i, n int) string {
	return fmt.Sprintf("--- Chunk %d of %d ---\n", i, n)
}
