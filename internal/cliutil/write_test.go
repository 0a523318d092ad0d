package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "Diagrams: %d, type %s", 8, "full")
	assert.Equal(t, "Diagrams: 8, type full", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() {
		Writef(failingWriter{}, "ignored %s", "output")
	})
}

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 relations"},
		{1, "1 relation"},
		{6, "6 relations"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.n, "relation", "relations"))
	}
}
