package errors

import "log/slog"

// LogHandler is an ErrorHandler that writes reports to a structured logger.
type LogHandler struct {
	// Logger receives the reports. slog.Default() is used when nil.
	Logger *slog.Logger
	// Verbose includes stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a GUIError.
func (h *LogHandler) HandleError(err *GUIError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.String("kind", err.Kind.String())}
	if err.Name != "" {
		attrs = append(attrs, slog.String("name", err.Name))
	}
	if err.Err != nil {
		attrs = append(attrs, slog.Any("err", err.Err))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("facet error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("facet panic", attrs...)
}
