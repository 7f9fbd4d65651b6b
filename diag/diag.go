// Package diag collects the recoverable diagnostics produced while compiling a
// document. A compile keeps going after a warning; the offending value is
// dropped or replaced with an empty one.
package diag

import (
	"fmt"

	"go.uber.org/zap"
)

type Warning struct {
	Stage string
	Line  int // 1-based; 0 when unknown
	Msg   string
}

func (w *Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", w.Stage, w.Line, w.Msg)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Msg)
}

// Sink is shared by every stage of one compile, including the nested compiles
// of table cells, so warnings end up in a single ordered list.
type Sink struct {
	log      *zap.Logger
	warnings []*Warning
}

func NewSink(log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{log: log}
}

func (s *Sink) Logger() *zap.Logger {
	return s.log
}

func (s *Sink) Warnf(stage string, format string, args ...interface{}) {
	s.WarnAt(stage, 0, format, args...)
}

func (s *Sink) WarnAt(stage string, line int, format string, args ...interface{}) {
	w := &Warning{
		Stage: stage,
		Line:  line,
		Msg:   fmt.Sprintf(format, args...),
	}
	s.warnings = append(s.warnings, w)

	fields := []zap.Field{zap.String("stage", stage)}
	if line > 0 {
		fields = append(fields, zap.Int("line", line))
	}
	s.log.Warn(w.Msg, fields...)
}

func (s *Sink) Warnings() []*Warning {
	return s.warnings
}
