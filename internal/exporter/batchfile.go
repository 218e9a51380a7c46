package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/export"
)

type batchFile struct {
	Messages []export.RawMessage `json:"messages"`
}

// LoadBatchDir reads every .json batch file under dir, in name order, as one
// batch per file. Batch files come from browser captures, so message text is
// run through DOM cleanup. A malformed file fails the whole load: silently
// dropping a capture would silently drop its messages.
func LoadBatchDir(dir string, logger *zap.Logger) ([]export.Batch, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var batches []export.Batch
	total := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read batch file %s: %w", path, err)
		}

		var bf batchFile
		if err := json.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
		}

		batch := make(export.Batch, 0, len(bf.Messages))
		for _, raw := range bf.Messages {
			raw.Text = cleanDOMText(raw.Text)
			batch = append(batch, raw)
		}
		batches = append(batches, batch)
		total += len(batch)
	}

	logger.Info("Loaded batch files",
		zap.String("dir", dir),
		zap.Int("files", len(names)),
		zap.Int("messages", total))
	return batches, nil
}
