package people

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Conversation is one entry in the channels reference file. Export and
// Share are tri-state: nil means the operator has not decided yet, which
// counts as no.
type Conversation struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"displayName,omitempty"`
	Name         string   `json:"name,omitempty"`
	Export       *bool    `json:"export,omitempty"`
	Share        *bool    `json:"share,omitempty"`
	ShareMembers []string `json:"shareMembers,omitempty"`
	Members      []string `json:"members,omitempty"`
	IsIM         bool     `json:"is_im,omitempty"`
	IsMPIM       bool     `json:"is_mpim,omitempty"`
	User         string   `json:"user,omitempty"`
	BatchDir     string   `json:"batchDir,omitempty"`
}

type channelsFile struct {
	Channels []Conversation `json:"channels"`
}

type browserExportFile struct {
	BrowserExport []Conversation `json:"browser-export"`
}

// Title returns the human name used for folders and transcripts, preferring
// the operator-assigned display name over the Slack channel name, over the
// raw ID.
func (c Conversation) Title() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ShouldExport reports whether this conversation is enabled for export.
func (c Conversation) ShouldExport() bool {
	return c.Export != nil && *c.Export
}

// ShouldShare reports whether this conversation's folder should be shared.
func (c Conversation) ShouldShare() bool {
	return c.Share != nil && *c.Share
}

// LoadConversations reads the channels reference file and returns the
// entries enabled for export. Entries without an ID are dropped with a
// warning.
func LoadConversations(path string, logger *zap.Logger) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read channels file %s: %w", path, err)
	}

	var cf channelsFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse channels file %s: %w", path, err)
	}

	var out []Conversation
	for _, c := range cf.Channels {
		if c.ID == "" {
			logger.Warn("Skipping channel entry without an id",
				zap.String("displayName", c.DisplayName))
			continue
		}
		if !c.ShouldExport() {
			logger.Debug("Channel not enabled for export", zap.String("channel", c.ID))
			continue
		}
		out = append(out, c)
	}
	logger.Info("Loaded channels", zap.Int("total", len(cf.Channels)), zap.Int("enabled", len(out)))
	return out, nil
}

// LoadBrowserExports reads the browser-export reference file, which lists
// conversations whose history arrives as captured batch files rather than
// API pages. A missing file means there are none.
func LoadBrowserExports(path string, logger *zap.Logger) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read browser-export file %s: %w", path, err)
	}

	var bf browserExportFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse browser-export file %s: %w", path, err)
	}

	var out []Conversation
	for _, c := range bf.BrowserExport {
		if c.ID == "" && c.BatchDir == "" {
			logger.Warn("Skipping browser-export entry without an id or batchDir",
				zap.String("displayName", c.DisplayName))
			continue
		}
		if !c.ShouldExport() {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// LoadConversationsAll reads every entry from the channels reference file,
// including ones not enabled for export.
func LoadConversationsAll(path string, logger *zap.Logger) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read channels file %s: %w", path, err)
	}

	var cf channelsFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse channels file %s: %w", path, err)
	}

	var out []Conversation
	for _, c := range cf.Channels {
		if c.ID == "" {
			logger.Warn("Skipping channel entry without an id",
				zap.String("displayName", c.DisplayName))
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// SaveConversations writes the channels reference file.
func SaveConversations(path string, convs []Conversation) error {
	data, err := json.MarshalIndent(channelsFile{Channels: convs}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal channels file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write channels file: %w", err)
	}
	return nil
}

// ParseMemberNames splits a comma-separated member display-name list, the
// form DM and group-DM titles take.
func ParseMemberNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
