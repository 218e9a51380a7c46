package export

import (
	"math"
	"strconv"
)

// ResolveStartBound picks the lower time bound for the next fetch from an
// explicit user-supplied start and the stored watermark of the previous
// export. When both are present the later (more restrictive) one wins, so
// no already-exported range is re-fetched. Empty means absent; both absent
// means full history. fromWatermark reports that the stored watermark
// supplied the bound: the message carrying that exact timestamp was already
// exported, so the caller must treat the bound as exclusive.
func ResolveStartBound(explicitStart, storedWatermark string) (bound string, fromWatermark bool) {
	ev, hasExplicit := parseBound(explicitStart)
	sv, hasStored := parseBound(storedWatermark)

	switch {
	case hasExplicit && hasStored:
		if sv >= ev {
			return storedWatermark, true
		}
		return explicitStart, false
	case hasExplicit:
		return explicitStart, false
	case hasStored:
		return storedWatermark, true
	default:
		return "", false
	}
}

// LatestTimestamp returns the maximum timestamp of a message sequence, or
// empty for an empty sequence. This becomes the new watermark after a
// fully successful export run.
func LatestTimestamp(msgs []Message) string {
	best := ""
	bestVal := math.Inf(-1)
	for _, m := range msgs {
		if m.Epoch > bestVal {
			bestVal = m.Epoch
			best = m.Timestamp
		}
	}
	return best
}

// ShouldAdvance reports whether next is strictly greater than the currently
// stored watermark. The watermark is monotonic: a partial or retried run
// that observes an older maximum never regresses it.
func ShouldAdvance(stored, next string) bool {
	nv, hasNext := parseBound(next)
	if !hasNext {
		return false
	}
	sv, hasStored := parseBound(stored)
	if !hasStored {
		return true
	}
	return nv > sv
}

// parseBound parses a timestamp bound; unparseable or non-positive values
// are treated as absent.
func parseBound(ts string) (float64, bool) {
	if ts == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(ts, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
