package people

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadDirectory(t *testing.T) {
	path := writeFile(t, "people.json", `{
		"people": [
			{"slackId": "U0AAAA111", "email": "Alice@Example.com", "displayName": "Alice"},
			{"slackId": "U0BBBB222", "displayName": "Bob", "noShare": true},
			{"slackId": "", "displayName": "no id"}
		]
	}`)

	d := LoadDirectory(path, zap.NewNop())
	if d.Size() != 2 {
		t.Fatalf("Size = %d, want 2 (entry without slackId dropped)", d.Size())
	}

	p, ok := d.ByID("U0AAAA111")
	if !ok || p.DisplayName != "Alice" {
		t.Errorf("ByID(U0AAAA111) = %+v, %v", p, ok)
	}
	if p, ok := d.ByEmail("alice@example.COM"); !ok || p.SlackID != "U0AAAA111" {
		t.Errorf("email lookup should be case-insensitive, got %+v, %v", p, ok)
	}
	if p, ok := d.ByName("  bob "); !ok || p.SlackID != "U0BBBB222" {
		t.Errorf("name lookup should trim and fold case, got %+v, %v", p, ok)
	}
}

func TestLoadDirectory_Degraded(t *testing.T) {
	logger := zap.NewNop()

	if d := LoadDirectory(filepath.Join(t.TempDir(), "missing.json"), logger); d.Size() != 0 {
		t.Errorf("missing file should yield an empty directory, size %d", d.Size())
	}

	path := writeFile(t, "people.json", `{not json`)
	if d := LoadDirectory(path, logger); d.Size() != 0 {
		t.Errorf("malformed file should yield an empty directory, size %d", d.Size())
	}
}

func TestDirectory_OptOuts(t *testing.T) {
	d := NewDirectory([]Person{
		{SlackID: "U1", Email: "a@example.com", NoShare: true},
		{SlackID: "U2", Email: "b@example.com", NoNotifications: true},
		{SlackID: "U3", Email: "c@example.com"},
		{SlackID: "U4", NoShare: true},
	})

	share := d.OptOutShare()
	if !share["a@example.com"] || len(share) != 1 {
		t.Errorf("OptOutShare = %v, want only a@example.com", share)
	}
	notify := d.OptOutNotify()
	if !notify["b@example.com"] || len(notify) != 1 {
		t.Errorf("OptOutNotify = %v, want only b@example.com", notify)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.example.org", true},
		{"not an email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.in); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
