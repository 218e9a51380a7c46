package export

import (
	"errors"
	"sort"

	"go.uber.org/zap"
)

// DedupeAndSort merges one or more batches into a single chronologically
// ordered sequence. Records without a valid timestamp are dropped and
// counted; the dedup key is the exact timestamp string, with the first
// occurrence across the batch list winning. The operation is idempotent:
// feeding its output back in (as a single batch) is a no-op.
func DedupeAndSort(batches []Batch, logger *zap.Logger) (msgs []Message, invalid int) {
	seen := make(map[string]struct{})

	for _, batch := range batches {
		for _, raw := range batch {
			msg, err := ParseMessage(raw)
			if err != nil {
				invalid++
				if errors.Is(err, ErrInvalidTimestamp) {
					logger.Warn("Dropping message with invalid timestamp",
						zap.String("ts", raw.Ts))
				}
				continue
			}
			if _, ok := seen[msg.Timestamp]; ok {
				continue
			}
			seen[msg.Timestamp] = struct{}{}
			msgs = append(msgs, msg)
		}
	}

	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Epoch < msgs[j].Epoch
	})

	if invalid > 0 {
		logger.Warn("Skipped invalid messages during merge",
			zap.Int("invalid", invalid),
			zap.Int("kept", len(msgs)))
	}

	return msgs, invalid
}

// Rewrap converts an already merged sequence back into a single batch, for
// re-merging with freshly fetched pages on a resumed run.
func Rewrap(msgs []Message) Batch {
	batch := make(Batch, 0, len(msgs))
	for _, m := range msgs {
		batch = append(batch, RawMessage{
			Ts:       m.Timestamp,
			User:     m.Author,
			Username: m.Username,
			Text:     m.Body,
			ThreadTs: m.ThreadKey,
			Files:    m.Files,
		})
	}
	return batch
}

// FilterByRange keeps only messages whose timestamp falls within the
// [oldest, latest] bounds. latest is always inclusive; oldest is exclusive
// when exclusiveOldest is set, which is how a watermark bound behaves: the
// message at exactly that timestamp was exported by the previous run. Empty
// bounds are open ends.
func FilterByRange(msgs []Message, oldest, latest string, exclusiveOldest bool) []Message {
	lo, hasLo := parseBound(oldest)
	hi, hasHi := parseBound(latest)
	if !hasLo && !hasHi {
		return msgs
	}

	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if hasLo && (m.Epoch < lo || (exclusiveOldest && m.Epoch == lo)) {
			continue
		}
		if hasHi && m.Epoch > hi {
			continue
		}
		out = append(out, m)
	}
	return out
}
