package export

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func mustMessages(t *testing.T, raw Batch) []Message {
	t.Helper()
	msgs, invalid := DedupeAndSort([]Batch{raw}, zap.NewNop())
	if invalid != 0 {
		t.Fatalf("test fixture contains %d invalid messages", invalid)
	}
	return msgs
}

func TestAssembleThreads_RootAndReplies(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "1700000100.000000", User: "alice", Text: "root"},
		{Ts: "1700000200.000000", User: "bob", Text: "reply", ThreadTs: "1700000100.000000"},
	})

	out := AssembleThreads(msgs, nil)
	lines := strings.Split(out, "\n")

	if !strings.Contains(lines[0], "alice: root") {
		t.Errorf("root line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    > ") || !strings.Contains(lines[1], "bob: reply") {
		t.Errorf("reply line = %q, want indented reply", lines[1])
	}
}

func TestAssembleThreads_EmptyRootSkipped(t *testing.T) {
	// The true root has no content, so the next earliest reply is rendered
	// as the root line.
	msgs := mustMessages(t, Batch{
		{Ts: "100", User: "alice", Text: "", ThreadTs: "100"},
		{Ts: "105", User: "bob", Text: "reply", ThreadTs: "100"},
	})

	out := AssembleThreads(msgs, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), out)
	}
	if strings.HasPrefix(lines[0], "    > ") {
		t.Errorf("promoted root is still rendered as a reply: %q", lines[0])
	}
	if !strings.Contains(lines[0], "bob: reply") {
		t.Errorf("root line = %q, want the ts=105 reply", lines[0])
	}
}

func TestAssembleThreads_ThreadsOrderedByRoot(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "300", User: "c", Text: "later thread"},
		{Ts: "100", User: "a", Text: "earlier thread"},
		{Ts: "200", User: "b", Text: "reply to earlier", ThreadTs: "100"},
	})

	out := AssembleThreads(msgs, nil)
	earlier := strings.Index(out, "earlier thread")
	later := strings.Index(out, "later thread")
	if earlier < 0 || later < 0 || earlier > later {
		t.Errorf("threads out of order:\n%s", out)
	}
}

func TestAssembleThreads_BlankLineBetweenThreads(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "100", User: "a", Text: "one"},
		{Ts: "200", User: "b", Text: "two"},
	})

	out := AssembleThreads(msgs, nil)
	if !strings.Contains(out, "one\n\n") {
		t.Errorf("no blank separator between threads:\n%q", out)
	}
}

func TestAssembleThreads_FilePlaceholders(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "100", User: "a", Text: "", Files: []File{{Name: "report.pdf"}}},
		{Ts: "200", User: "b", Text: "see attached", Files: []File{{Name: "x.png"}}},
	})

	out := AssembleThreads(msgs, nil)
	if !strings.Contains(out, "a: [File attached]") {
		t.Errorf("attachment-only message missing placeholder body:\n%s", out)
	}
	if !strings.Contains(out, "see attached [File attached]") {
		t.Errorf("text+attachment message missing appended placeholder:\n%s", out)
	}
}

func TestAssembleThreads_MultilineBodyIndented(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "100", User: "a", Text: "line one\nline two"},
	})

	out := AssembleThreads(msgs, nil)
	if !strings.Contains(out, "line one\n    line two") {
		t.Errorf("continuation line not re-indented:\n%q", out)
	}
}

func TestAssembleThreads_ResolverFallbacks(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "100", User: "U0RESOLVED", Text: "hi"},
		{Ts: "200", User: "U0MISSING", Text: "hi"},
		{Ts: "300", User: "U0BOTUSER", Username: "deploybot", Text: "hi"},
		{Ts: "400", Username: "webhook", Text: "hi"},
		{Ts: "500", Text: "hi"},
	})

	resolve := func(id string) (string, bool) {
		if id == "U0RESOLVED" {
			return "Alice", true
		}
		return "", false
	}

	out := AssembleThreads(msgs, resolve)
	for _, want := range []string{"Alice: hi", "U0MISSING: hi", "deploybot: hi", "webhook: hi", "Unknown User: hi"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAssembleThreads_TimestampFormat(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "1729209599.000000", User: "a", Text: "late"},
	})

	out := AssembleThreads(msgs, nil)
	if !strings.Contains(out, "[2024-10-17 23:59:59 UTC]") {
		t.Errorf("timestamp not formatted as UTC datetime:\n%q", out)
	}
}

func TestAssembleThreads_Empty(t *testing.T) {
	if out := AssembleThreads(nil, nil); out != "" {
		t.Errorf("empty input rendered %q", out)
	}
}
