package tzcat

import "log"

// Logger is the thin, boolean-gated diagnostics sink every compile runs
// against. It is not a structured logging library: one method, printf
// shaped, exactly wide enough for the driver's verbose progress lines.
type Logger interface {
	Printf(format string, args ...any)
}

// NopLogger discards everything. It is the default when a caller does not
// supply a Logger.
type NopLogger struct{}

func (NopLogger) Printf(string, ...any) {}

// StdLogger adapts a standard library *log.Logger to the Logger interface.
type StdLogger struct {
	L *log.Logger
}

func (s StdLogger) Printf(format string, args ...any) { s.L.Printf(format, args...) }
