package logging

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler delivers each record to every sink. A failing sink does
// not starve the others; the errors are joined and reported together.
type FanoutHandler struct {
	sinks []slog.Handler
}

func NewFanout(sinks ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{sinks: sinks}
}

func (f *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range f.sinks {
		if !s.Enabled(ctx, record.Level) {
			continue
		}
		if err := s.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.sinks))
	for i, s := range f.sinks {
		next[i] = s.WithAttrs(attrs)
	}
	return &FanoutHandler{sinks: next}
}

func (f *FanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.sinks))
	for i, s := range f.sinks {
		next[i] = s.WithGroup(name)
	}
	return &FanoutHandler{sinks: next}
}
