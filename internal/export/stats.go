package export

import "go.uber.org/zap"

// Stats accumulates per-run counters. Partial success is a first-class
// outcome: the summary is emitted however many individual units failed.
type Stats struct {
	Processed     int
	Skipped       int
	Failed        int
	Uploaded      int
	UploadFailed  int
	Shared        int
	ShareFailed   int
	TotalMessages int
	Invalid       int
}

// Log emits the end-of-run summary block.
func (s *Stats) Log(logger *zap.Logger, uploadEnabled bool) {
	fields := []zap.Field{
		zap.Int("processed", s.Processed),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
	}
	if uploadEnabled {
		fields = append(fields,
			zap.Int("uploaded", s.Uploaded),
			zap.Int("upload_failed", s.UploadFailed),
			zap.Int("shared", s.Shared),
			zap.Int("share_failed", s.ShareFailed),
		)
	}
	fields = append(fields, zap.Int("total_messages", s.TotalMessages))
	if s.Invalid > 0 {
		fields = append(fields, zap.Int("invalid_messages", s.Invalid))
	}
	logger.Info("Export statistics", fields...)
}
