package export

import "sort"

// DefaultChunkSize bounds how many messages of a single day go into one
// upload. Days above the bound are split into contiguous chunks.
const DefaultChunkSize = 10000

// DayBucket holds the messages of one UTC calendar day, in timestamp order.
type DayBucket struct {
	Date     string // YYYYMMDD
	Messages []Message
}

// PartitionByDay groups an ordered message sequence into per-day buckets,
// emitted in ascending date order. Every input message lands in exactly one
// bucket; day boundaries are UTC so results do not depend on the timezone
// the export runs in.
func PartitionByDay(msgs []Message) []DayBucket {
	byDay := make(map[string][]Message)
	for _, m := range msgs {
		key := m.DateKey()
		byDay[key] = append(byDay[key], m)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]DayBucket, 0, len(keys))
	for _, k := range keys {
		inDay := byDay[k]
		sort.Slice(inDay, func(i, j int) bool { return inDay[i].Epoch < inDay[j].Epoch })
		buckets = append(buckets, DayBucket{Date: k, Messages: inDay})
	}
	return buckets
}

// Chunk splits a message list into contiguous sub-lists of at most max
// messages, preserving order. Boundaries fall exactly at the count, so a
// thread may straddle chunks; chunking exists for upload-size management,
// not presentation.
func Chunk(msgs []Message, max int) [][]Message {
	if max <= 0 || len(msgs) <= max {
		return [][]Message{msgs}
	}

	chunks := make([][]Message, 0, (len(msgs)+max-1)/max)
	for start := 0; start < len(msgs); start += max {
		end := start + max
		if end > len(msgs) {
			end = len(msgs)
		}
		chunks = append(chunks, msgs[start:end])
	}
	return chunks
}
