// Package export implements the message reconciliation pipeline: merging
// message batches from overlapping sources into a deduplicated, ordered,
// thread-grouped transcript, partitioned by UTC day for upload.
package export

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// File describes an attachment carried by a message. Only enough of the
// source record is kept to render an inline placeholder.
type File struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// RawMessage is a loosely typed message record as captured from a Slack API
// page, a browser DOM snapshot, or a stored batch file. It is validated
// exactly once, at ingestion, into a Message.
type RawMessage struct {
	Ts       string `json:"ts"`
	User     string `json:"user,omitempty"`
	Username string `json:"username,omitempty"`
	Text     string `json:"text"`
	ThreadTs string `json:"thread_ts,omitempty"`
	Files    []File `json:"files,omitempty"`
}

// Batch is one independently sourced list of raw messages. Batches from
// adjacent API pages or overlapping DOM captures may repeat messages.
type Batch []RawMessage

// ErrInvalidTimestamp marks a record whose ts field does not parse as a
// positive finite float.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Message is a validated message. The Timestamp string is the identity of
// the message within a conversation; two records with the same timestamp
// string are the same message.
type Message struct {
	Timestamp string
	Epoch     float64 // Timestamp parsed as seconds since epoch
	Author    string  // user ID, or a literal display name for DOM captures
	Username  string  // bot fallback name from the source record
	Body      string
	ThreadKey string // timestamp of the thread root; own timestamp for roots
	Files     []File
}

// ParseMessage validates a raw record and produces a typed Message.
func ParseMessage(raw RawMessage) (Message, error) {
	ts, err := strconv.ParseFloat(raw.Ts, 64)
	if err != nil || ts <= 0 || math.IsInf(ts, 0) || math.IsNaN(ts) {
		return Message{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw.Ts)
	}

	key := raw.ThreadTs
	if key == "" {
		key = raw.Ts
	}

	return Message{
		Timestamp: raw.Ts,
		Epoch:     ts,
		Author:    raw.User,
		Username:  raw.Username,
		Body:      raw.Text,
		ThreadKey: key,
		Files:     raw.Files,
	}, nil
}

// HasContent reports whether the message would render anything: either body
// text or at least one attachment placeholder.
func (m Message) HasContent() bool {
	return m.Body != "" || len(m.Files) > 0
}

// DateKey returns the UTC calendar date of the message as YYYYMMDD.
func (m Message) DateKey() string {
	return dateKey(m.Epoch)
}
