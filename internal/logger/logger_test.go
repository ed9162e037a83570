// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false)
	l.Debug("hidden")
	l.Info("shown", zap.String("run_id", "abc"))
	_ = l.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "abc")

	buf.Reset()
	l = NewWithWriter(&buf, true)
	l.Debug("visible")
	_ = l.Sync()
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
