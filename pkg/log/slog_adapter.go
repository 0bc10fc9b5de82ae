package log

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter writes resolution events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or Warn for rejections.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}
	if event.BuildID != "" {
		attrs = append(attrs, slog.String("build_id", event.BuildID))
	}
	if event.Board != "" {
		attrs = append(attrs, slog.String("board", event.Board))
	}
	if event.Variant != "" {
		attrs = append(attrs, slog.String("variant", event.Variant))
	}

	level := slog.LevelDebug
	switch {
	case event.Selection != nil:
		attrs = append(attrs, slog.Bool("wants_runtime", event.Selection.WantsRuntime))
	case event.Activation != nil:
		attrs = append(attrs,
			slog.String("tags", strings.Join(event.Activation.Tags, ",")),
			slog.String("pac", event.Activation.PAC),
			slog.Bool("runtime_shim", event.Activation.RuntimeShim),
		)
		if event.Activation.Fingerprint != "" {
			attrs = append(attrs, slog.String("fingerprint", event.Activation.Fingerprint))
		}
	case event.Rejection != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("kind", event.Rejection.Kind),
			slog.String("error", event.Rejection.Message),
		)
	case event.Check != nil:
		attrs = append(attrs,
			slog.String("rule", event.Check.RuleID),
			slog.String("severity", event.Check.Severity),
			slog.String("message", event.Check.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "resolve", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
