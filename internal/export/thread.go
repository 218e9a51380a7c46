package export

import (
	"sort"
	"strconv"
	"strings"
)

// NameResolver maps an author identifier to a display name. A false return
// means resolution failed; the assembler then falls back to the record's
// own username field or the raw identifier.
type NameResolver func(id string) (string, bool)

const (
	replyMarker     = "    > "
	bodyIndent      = "\n    "
	filePlaceholder = "[File attached]"
	unknownAuthor   = "Unknown User"
)

type renderedMessage struct {
	epoch float64
	ts    string
	name  string
	text  string
}

// AssembleThreads groups an ordered message sequence into threads and
// renders them as an indented transcript. Threads are emitted oldest root
// first; within a thread the earliest renderable message becomes the root
// line and the rest are indented replies. Messages with neither body nor
// attachments are skipped entirely.
func AssembleThreads(msgs []Message, resolve NameResolver) string {
	threads := make(map[string][]renderedMessage)

	for _, m := range msgs {
		if !m.HasContent() {
			continue
		}

		text := m.Body
		switch {
		case text == "" && len(m.Files) > 0:
			text = filePlaceholder
		case len(m.Files) > 0:
			text += " " + filePlaceholder
		}
		text = strings.ReplaceAll(text, "\n", bodyIndent)

		threads[m.ThreadKey] = append(threads[m.ThreadKey], renderedMessage{
			epoch: m.Epoch,
			ts:    m.Timestamp,
			name:  displayName(m, resolve),
			text:  text,
		})
	}

	keys := make([]string, 0, len(threads))
	for k := range threads {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return threadOrder(keys[i], keys[j]) })

	var lines []string
	for _, key := range keys {
		inThread := threads[key]
		sort.Slice(inThread, func(i, j int) bool { return inThread[i].epoch < inThread[j].epoch })

		root := inThread[0]
		lines = append(lines, "["+FormatTimestamp(root.ts)+"] "+root.name+": "+root.text)
		for _, reply := range inThread[1:] {
			lines = append(lines, replyMarker+"["+FormatTimestamp(reply.ts)+"] "+reply.name+": "+reply.text)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// displayName resolves the author for rendering. Resolution failures never
// abort assembly; the fallback chain is username, then the raw identifier.
func displayName(m Message, resolve NameResolver) string {
	if m.Author == "" {
		if m.Username != "" {
			return m.Username
		}
		return unknownAuthor
	}
	if resolve != nil {
		if name, ok := resolve(m.Author); ok && name != "" {
			return name
		}
	}
	if m.Username != "" {
		return m.Username
	}
	return m.Author
}

// threadOrder sorts thread keys by their numeric value, falling back to
// string order for keys that do not parse.
func threadOrder(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return a < b
	}
	return fa < fb
}
