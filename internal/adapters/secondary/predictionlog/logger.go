package predictionlog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"wine-classifier-service/internal/config"
	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
)

const timestampLayout = "2006-01-02 15:04:05"

type FileLogger struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewFileLogger appends one text line per prediction to cfg.Path, rotating
// the file with lumberjack once it reaches cfg.MaxSizeMB.
func NewFileLogger(cfg *config.PredictionLogConfig) *FileLogger {
	return newLogger(&lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	})
}

func newLogger(w io.WriteCloser) *FileLogger {
	return &FileLogger{w: w}
}

var _ output.PredictionRecorder = (*FileLogger)(nil)

func (l *FileLogger) Record(_ context.Context, p *domain.Prediction) error {
	line := FormatLine(p)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.w, line); err != nil {
		return fmt.Errorf("write prediction log: %w", err)
	}
	return nil
}

func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}

// FormatLine renders "2006-01-02 15:04:05 | input: [a, b, ...] | prediction: label\n".
func FormatLine(p *domain.Prediction) string {
	values := make([]string, len(p.Input))
	for i, v := range p.Input {
		values[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%s | input: [%s] | prediction: %s\n",
		p.CreatedAt.Format(timestampLayout), strings.Join(values, ", "), p.Label)
}
