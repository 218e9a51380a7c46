package share

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/people"
)

func boolPtr(b bool) *bool { return &b }

type fakeMemberSource struct {
	members map[string][]string
	err     error
}

func (f *fakeMemberSource) ConversationMembers(_ context.Context, id string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members[id], nil
}

func TestMembers_Chain(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	src := &fakeMemberSource{members: map[string][]string{
		"C0LIVE0001": {"U0AAAA111", "U0BBBB222"},
	}}

	// Reference file wins over everything.
	conv := people.Conversation{ID: "C0LIVE0001", Members: []string{"U0FILE0001"}}
	if got := Members(ctx, conv, src, logger); !reflect.DeepEqual(got, []string{"U0FILE0001"}) {
		t.Errorf("file members should win, got %v", got)
	}

	// Live lookup next.
	conv = people.Conversation{ID: "C0LIVE0001"}
	if got := Members(ctx, conv, src, logger); len(got) != 2 {
		t.Errorf("live members = %v", got)
	}

	// DM falls back to the counterpart user.
	conv = people.Conversation{ID: "D0DM000001", IsIM: true, User: "U0CCCC333"}
	if got := Members(ctx, conv, src, logger); !reflect.DeepEqual(got, []string{"U0CCCC333"}) {
		t.Errorf("DM members = %v", got)
	}

	// Browser-captured group DM parses its title.
	broken := &fakeMemberSource{err: errors.New("no access")}
	conv = people.Conversation{ID: "G0MPIM0001", DisplayName: "Alice, Bob Smith"}
	if got := Members(ctx, conv, broken, logger); !reflect.DeepEqual(got, []string{"Alice", "Bob Smith"}) {
		t.Errorf("title members = %v", got)
	}
}

func testResolver() (*people.Resolver, *people.Directory) {
	dir := people.NewDirectory([]people.Person{
		{SlackID: "U0ALICE001", DisplayName: "Alice", Email: "alice@example.com"},
		{SlackID: "U0BOB00001", DisplayName: "Bob", Email: "bob@example.com", NoShare: true},
		{SlackID: "U0CAROL001", DisplayName: "Carol", Email: "carol@example.com", NoNotifications: true},
		{SlackID: "U0DANA0001", DisplayName: "Dana"},
	})
	return people.NewResolver(dir, nil, zap.NewNop()), dir
}

func TestComputeRecipients(t *testing.T) {
	resolver, dir := testResolver()
	members := []string{"U0ALICE001", "U0BOB00001", "U0CAROL001", "U0DANA0001", "U0UNKNOWN1"}

	got := ComputeRecipients(context.Background(), members, nil, resolver, dir, zap.NewNop())

	want := map[string]bool{
		"alice@example.com": true,  // normal member, notified
		"carol@example.com": false, // shared but not notified
	}
	// Bob opted out of sharing, Dana has no email, U0UNKNOWN1 does not
	// resolve.
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComputeRecipients = %v, want %v", got, want)
	}
}

func TestComputeRecipients_AllowList(t *testing.T) {
	resolver, dir := testResolver()
	members := []string{"U0ALICE001", "U0CAROL001"}

	tests := []struct {
		name  string
		allow []string
		want  []string
	}{
		{"by display name", []string{"alice"}, []string{"alice@example.com"}},
		{"by email", []string{"CAROL@example.com"}, []string{"carol@example.com"}},
		{"by slack id", []string{"u0alice001"}, []string{"alice@example.com"}},
		{"no match", []string{"nobody"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRecipients(context.Background(), members, tt.allow, resolver, dir, zap.NewNop())
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want emails %v", got, tt.want)
			}
			for _, email := range tt.want {
				if _, ok := got[email]; !ok {
					t.Errorf("missing %s in %v", email, got)
				}
			}
		})
	}
}

func TestComputeRecipients_LiteralEmails(t *testing.T) {
	resolver, dir := testResolver()

	// Browser captures carry literal names; names that resolve to a
	// directory person with an email become recipients.
	got := ComputeRecipients(context.Background(), []string{"Alice", "Mystery Guest"}, nil, resolver, dir, zap.NewNop())
	if len(got) != 1 {
		t.Fatalf("got %v, want only Alice", got)
	}
	if _, ok := got["alice@example.com"]; !ok {
		t.Errorf("Alice missing from %v", got)
	}
}
