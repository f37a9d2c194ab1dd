package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// FileWriter delivers reports as indented JSON to a file, or to stdout when
// the path is empty or "-".
type FileWriter struct {
	path   string
	logger *slog.Logger
}

// NewFileWriter creates a file sink for the given path.
func NewFileWriter(path string, logger *slog.Logger) *FileWriter {
	return &FileWriter{path: path, logger: logger}
}

// Deliver writes the report. The file is replaced atomically from the
// reader's point of view: written to a temp file first, then renamed.
func (w *FileWriter) Deliver(_ context.Context, rep *ImpactReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if w.path == "" || w.path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}

	w.logger.Info("report written", "path", w.path, "run_id", rep.RunID)
	return nil
}
