package export

import (
	"testing"

	"go.uber.org/zap"
)

func TestPartitionByDay_UTCBoundary(t *testing.T) {
	// 1729209599 = 2024-10-17 23:59:59 UTC, 1729209601 = 2024-10-18 00:00:01 UTC.
	msgs := mustMessages(t, Batch{
		{Ts: "1729209599.000000", Text: "before midnight"},
		{Ts: "1729209601.000000", Text: "after midnight"},
	})

	buckets := PartitionByDay(msgs)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2: messages 2s apart straddle a UTC day", len(buckets))
	}
	if buckets[0].Date != "20241017" || buckets[1].Date != "20241018" {
		t.Errorf("dates = %q, %q; want 20241017, 20241018", buckets[0].Date, buckets[1].Date)
	}
}

func TestPartitionByDay_Completeness(t *testing.T) {
	raw := Batch{
		{Ts: "1729209599.1"}, {Ts: "1729209599.2"}, {Ts: "1729209601.1"},
		{Ts: "1729000000.5"}, {Ts: "1729300000.9"},
	}
	msgs := mustMessages(t, raw)

	buckets := PartitionByDay(msgs)
	total := 0
	seen := make(map[string]bool)
	for _, b := range buckets {
		total += len(b.Messages)
		for _, m := range b.Messages {
			if seen[m.Timestamp] {
				t.Errorf("message %s appears in more than one bucket", m.Timestamp)
			}
			seen[m.Timestamp] = true
		}
	}
	if total != len(msgs) {
		t.Errorf("buckets hold %d messages, input had %d", total, len(msgs))
	}
}

func TestPartitionByDay_AscendingDates(t *testing.T) {
	msgs := mustMessages(t, Batch{
		{Ts: "1729300000"}, {Ts: "1729000000"}, {Ts: "1729209601"},
	})

	buckets := PartitionByDay(msgs)
	for i := 1; i < len(buckets); i++ {
		if buckets[i-1].Date >= buckets[i].Date {
			t.Fatalf("buckets not in ascending date order: %s then %s", buckets[i-1].Date, buckets[i].Date)
		}
	}
}

func TestChunk(t *testing.T) {
	var raw Batch
	for i := 0; i < 25; i++ {
		raw = append(raw, RawMessage{Ts: "100." + string(rune('0'+i/10)) + string(rune('0'+i%10))})
	}
	msgs, _ := DedupeAndSort([]Batch{raw}, zap.NewNop())

	chunks := Chunk(msgs, 10)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 10 || len(chunks[1]) != 10 || len(chunks[2]) != 5 {
		t.Errorf("chunk sizes = %d, %d, %d; want 10, 10, 5",
			len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	// Order is preserved across the boundary.
	last := chunks[0][len(chunks[0])-1].Epoch
	first := chunks[1][0].Epoch
	if last > first {
		t.Errorf("order broken across chunk boundary: %v then %v", last, first)
	}
}

func TestChunk_UnderThreshold(t *testing.T) {
	msgs := mustMessages(t, Batch{{Ts: "1"}, {Ts: "2"}})
	chunks := Chunk(msgs, 10)
	if len(chunks) != 1 || len(chunks[0]) != 2 {
		t.Errorf("small input should stay a single chunk, got %d", len(chunks))
	}
}
