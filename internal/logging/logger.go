package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const timeLayout = "2006-01-02 15:04:05.000"

type Options struct {
	Level     slog.Leveler
	AddSource bool
	Color     bool
	// Stack appends a goroutine stack to error records carrying an "error" attribute.
	Stack bool
}

type prettyHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	opts   Options
	prefix string
	group  string
}

func NewPrettyHandler(out io.Writer, opts *Options) slog.Handler {
	if out == nil {
		out = os.Stdout
	}
	if opts == nil {
		opts = &Options{}
	}
	return &prettyHandler{
		mu:   &sync.Mutex{},
		out:  out,
		opts: *opts,
	}
}

// Init installs the pretty handler on stdout as the default logger.
func Init(levelName string) {
	handler := NewPrettyHandler(os.Stdout, &Options{
		Level:     ParseLevel(levelName),
		AddSource: true,
		Color:     os.Getenv("NO_COLOR") == "",
		Stack:     true,
	})
	slog.SetDefault(slog.New(handler))
}

func (h *prettyHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	if h.opts.Level == nil {
		return true
	}
	return lvl >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	var buf bytes.Buffer

	buf.WriteString(r.Time.Format(timeLayout))
	buf.WriteByte(' ')

	if h.opts.Color {
		fmt.Fprintf(&buf, "%s%-5s\033[0m ", colorForLevel(r.Level), levelName(r.Level))
	} else {
		fmt.Fprintf(&buf, "%-5s ", levelName(r.Level))
	}

	if h.opts.AddSource {
		if file, line := resolveCaller(r.PC); file != "" {
			fmt.Fprintf(&buf, "%-25s ", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}

	buf.WriteString(r.Message)
	buf.WriteString(h.prefix)

	var errVal error
	r.Attrs(func(a slog.Attr) bool {
		if e, ok := a.Value.Any().(error); ok && a.Key == "error" {
			errVal = e
		}
		writeAttr(&buf, h.group, a)
		return true
	})

	buf.WriteByte('\n')

	if errVal != nil && h.opts.Stack && r.Level >= slog.LevelError {
		buf.Write(debug.Stack())
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	for _, a := range attrs {
		writeAttr(&buf, h.group, a)
	}
	c := *h
	c.prefix = h.prefix + buf.String()
	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group == "" {
		c.group = name
	} else {
		c.group = c.group + "." + name
	}
	return &c
}

func writeAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" {
		key = group + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(buf, key, ga)
		}
		return
	}

	fmt.Fprintf(buf, " %s=%v", key, a.Value.Any())
}

func levelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

func ParseLevel(l string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func colorForLevel(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "\033[36m" // cyan
	case l < slog.LevelWarn:
		return "\033[32m" // green
	case l < slog.LevelError:
		return "\033[33m" // yellow
	default:
		return "\033[31m" // red
	}
}

// resolveCaller prefers the record's PC and falls back to walking the stack
// for the first frame outside internal/logging.
func resolveCaller(pc uintptr) (string, int) {
	if pc != 0 {
		f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
		if f.File != "" {
			return f.File, f.Line
		}
	}

	const maxDepth = 32
	var pcs [maxDepth]uintptr

	n := runtime.Callers(5, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	sep := string(os.PathSeparator)

	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, sep+"internal"+sep+"logging"+sep) && f.File != "" {
			return f.File, f.Line
		}
		if !more {
			break
		}
	}

	return "", 0
}
