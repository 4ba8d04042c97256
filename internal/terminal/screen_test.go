package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenBuffersUntilFlush(t *testing.T) {
	var out bytes.Buffer
	s := newScreen(&out, termenv.ANSI)

	s.MoveTo(4, 2)
	s.Write("hello")
	assert.Zero(t, out.Len())

	require.NoError(t, s.Flush())
	assert.Equal(t, "\x1b[3;5Hhello", out.String())

	out.Reset()
	require.NoError(t, s.Flush())
	assert.Zero(t, out.Len())
}

func TestScreenColors(t *testing.T) {
	var out bytes.Buffer
	s := newScreen(&out, termenv.ANSI)

	s.SetForeground(ColorRed)
	s.Write("hot")
	s.ResetStyle()
	s.Write("plain")
	require.NoError(t, s.Flush())

	got := out.String()
	assert.Contains(t, got, "31")
	assert.Contains(t, got, "hot")
	assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("plain")))
}

func TestScreenAsciiProfileDropsColor(t *testing.T) {
	var out bytes.Buffer
	s := newScreen(&out, termenv.Ascii)

	s.SetBackground(ColorGreen)
	s.Write("IDLE")
	require.NoError(t, s.Flush())
	assert.Equal(t, "IDLE", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestScreenFlushError(t *testing.T) {
	s := newScreen(failingWriter{}, termenv.ANSI)
	s.Write("x")
	assert.Error(t, s.Flush())
}
