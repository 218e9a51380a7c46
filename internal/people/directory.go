// Package people resolves author identifiers to display names and email
// addresses, layering a per-run cache over the static people reference file
// and live directory lookups.
package people

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Person is one entry in the people reference file.
type Person struct {
	SlackID         string `json:"slackId"`
	Email           string `json:"email,omitempty"`
	DisplayName     string `json:"displayName"`
	NoNotifications bool   `json:"noNotifications,omitempty"`
	NoShare         bool   `json:"noShare,omitempty"`
}

type peopleFile struct {
	People []Person `json:"people"`
}

// Directory is the static identifier-to-person reference table, loaded once
// at startup. It is the only name knowledge that persists across runs.
type Directory struct {
	byID    map[string]Person
	byEmail map[string]Person
	byName  map[string]Person
}

// NewDirectory builds a directory from person records. Entries without a
// Slack ID are skipped.
func NewDirectory(persons []Person) *Directory {
	d := &Directory{
		byID:    make(map[string]Person),
		byEmail: make(map[string]Person),
		byName:  make(map[string]Person),
	}
	for _, p := range persons {
		if p.SlackID == "" {
			continue
		}
		d.byID[p.SlackID] = p
		if p.Email != "" {
			d.byEmail[strings.ToLower(p.Email)] = p
		}
		if p.DisplayName != "" {
			d.byName[strings.ToLower(strings.TrimSpace(p.DisplayName))] = p
		}
	}
	return d
}

// LoadDirectory reads the people reference file. A missing or malformed
// file is not fatal: the run degrades to on-demand live lookups with an
// empty directory.
func LoadDirectory(path string, logger *zap.Logger) *Directory {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Info("No people file, falling back to on-demand lookups",
			zap.String("path", path))
		return NewDirectory(nil)
	}

	var pf peopleFile
	if err := json.Unmarshal(data, &pf); err != nil {
		logger.Warn("Malformed people file, falling back to on-demand lookups",
			zap.String("path", path), zap.Error(err))
		return NewDirectory(nil)
	}
	if pf.People == nil {
		logger.Warn("People file has no people list, falling back to on-demand lookups",
			zap.String("path", path))
		return NewDirectory(nil)
	}

	skipped := 0
	for _, p := range pf.People {
		if p.SlackID == "" {
			skipped++
		}
	}
	if skipped > 0 {
		logger.Warn("Skipping people entries without a slackId", zap.Int("skipped", skipped))
	}

	d := NewDirectory(pf.People)
	logger.Info("Loaded people directory", zap.Int("count", len(d.byID)))
	return d
}

// ByID looks up a person by Slack user ID.
func (d *Directory) ByID(id string) (Person, bool) {
	p, ok := d.byID[id]
	return p, ok
}

// ByEmail looks up a person by email, case-insensitive.
func (d *Directory) ByEmail(email string) (Person, bool) {
	p, ok := d.byEmail[strings.ToLower(email)]
	return p, ok
}

// ByName looks up a person by display name, case-insensitive.
func (d *Directory) ByName(name string) (Person, bool) {
	p, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Size returns the number of directory entries.
func (d *Directory) Size() int {
	return len(d.byID)
}

// OptOutShare returns the emails of people who opted out of being shared
// with, lowercased.
func (d *Directory) OptOutShare() map[string]bool {
	out := make(map[string]bool)
	for _, p := range d.byID {
		if p.NoShare && p.Email != "" {
			out[strings.ToLower(p.Email)] = true
		}
	}
	return out
}

// OptOutNotify returns the emails of people who opted out of share
// notifications, lowercased.
func (d *Directory) OptOutNotify() map[string]bool {
	out := make(map[string]bool)
	for _, p := range d.byID {
		if p.NoNotifications && p.Email != "" {
			out[strings.ToLower(p.Email)] = true
		}
	}
	return out
}

// SavePeople writes the people reference file.
func SavePeople(path string, persons []Person) error {
	data, err := json.MarshalIndent(peopleFile{People: persons}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal people file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write people file: %w", err)
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s looks like a plausible email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
