package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContext(t *testing.T) {
	t.Parallel()
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, false)
	ctx := withLogger(context.Background(), l)
	assert.Same(t, l, loggerFromContext(ctx))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		verbose bool
		want    log.Level
	}{
		"quiet":   {verbose: false, want: log.InfoLevel},
		"verbose": {verbose: true, want: log.DebugLevel},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := newLogger(&buf, tt.verbose)
			assert.Equal(t, tt.want, l.GetLevel())
			l.Debug("detail")
			assert.Equal(t, tt.verbose, bytes.Contains(buf.Bytes(), []byte("detail")))
		})
	}
}

func TestStages(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	st := startStages(newLogger(&buf, true))
	st.step("read data", "rows", 3)
	st.finish("Rendered 3 rows", "output", "stdout")

	out := buf.String()
	assert.Contains(t, out, "read data")
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "Rendered 3 rows")
	assert.Contains(t, out, "output=stdout")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("took=")))
}
