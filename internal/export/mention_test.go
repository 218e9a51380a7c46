package export

import "testing"

func TestReplaceUserMentions(t *testing.T) {
	resolve := func(id string) (string, bool) {
		if id == "U0AAAA111" {
			return "Alice", true
		}
		return "", false
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"angle bracket mention", "hey <@U0AAAA111> look", "hey @Alice look"},
		{"bare mention", "ping @U0AAAA111", "ping @Alice"},
		{"unresolvable left alone", "hey <@U0ZZZZ999>", "hey <@U0ZZZZ999>"},
		{"no mentions", "plain text", "plain text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceUserMentions(tt.in, resolve); got != tt.want {
				t.Errorf("ReplaceUserMentions(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReplaceUserMentions_NilResolver(t *testing.T) {
	in := "hey <@U0AAAA111>"
	if got := ReplaceUserMentions(in, nil); got != in {
		t.Errorf("nil resolver should pass text through, got %q", got)
	}
}
