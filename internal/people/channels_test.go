package people

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func boolPtr(b bool) *bool { return &b }

func TestConversation_Title(t *testing.T) {
	tests := []struct {
		name string
		conv Conversation
		want string
	}{
		{"display name wins", Conversation{ID: "C1", Name: "general", DisplayName: "Team General"}, "Team General"},
		{"name next", Conversation{ID: "C1", Name: "general"}, "general"},
		{"id last", Conversation{ID: "C1"}, "C1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conv.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConversation_TriStateFlags(t *testing.T) {
	undecided := Conversation{ID: "C1"}
	if undecided.ShouldExport() || undecided.ShouldShare() {
		t.Error("unset flags must count as no")
	}

	off := Conversation{ID: "C1", Export: boolPtr(false), Share: boolPtr(false)}
	if off.ShouldExport() || off.ShouldShare() {
		t.Error("explicit false must count as no")
	}

	on := Conversation{ID: "C1", Export: boolPtr(true), Share: boolPtr(true)}
	if !on.ShouldExport() || !on.ShouldShare() {
		t.Error("explicit true must count as yes")
	}
}

func TestLoadConversations(t *testing.T) {
	path := writeFile(t, "channels.json", `{
		"channels": [
			{"id": "C0ENABLED1", "name": "general", "export": true},
			{"id": "C0DISABLED", "name": "random", "export": false},
			{"id": "C0UNSET000", "name": "undecided"},
			{"name": "no id", "export": true}
		]
	}`)

	convs, err := LoadConversations(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadConversations error: %v", err)
	}
	if len(convs) != 1 || convs[0].ID != "C0ENABLED1" {
		t.Errorf("got %+v, want only the enabled channel", convs)
	}
}

func TestLoadConversations_Errors(t *testing.T) {
	logger := zap.NewNop()

	if _, err := LoadConversations("/nonexistent/channels.json", logger); err == nil {
		t.Error("missing channels file should be an error")
	}

	path := writeFile(t, "channels.json", `{broken`)
	if _, err := LoadConversations(path, logger); err == nil {
		t.Error("malformed channels file should be an error")
	}
}

func TestLoadBrowserExports(t *testing.T) {
	path := writeFile(t, "browser-export.json", `{
		"browser-export": [
			{"id": "D0DM000001", "displayName": "Alice", "export": true, "batchDir": "alice"},
			{"displayName": "orphan", "export": true}
		]
	}`)

	convs, err := LoadBrowserExports(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadBrowserExports error: %v", err)
	}
	if len(convs) != 1 || convs[0].BatchDir != "alice" {
		t.Errorf("got %+v, want only the entry with an id", convs)
	}

	// Missing file is not an error: there are just no browser captures.
	convs, err = LoadBrowserExports("/nonexistent/browser-export.json", zap.NewNop())
	if err != nil || convs != nil {
		t.Errorf("missing file should yield nil, nil; got %v, %v", convs, err)
	}
}

func TestParseMemberNames(t *testing.T) {
	got := ParseMemberNames("Alice, Bob Smith ,, Carol")
	want := []string{"Alice", "Bob Smith", "Carol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseMemberNames = %v, want %v", got, want)
	}
	if got := ParseMemberNames(""); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
}
