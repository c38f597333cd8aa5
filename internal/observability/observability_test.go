package observability

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStdLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, false).With(String("image", "a.png"))

	l.Info("processed", Int("width", 4), Duration("elapsed", 2*time.Millisecond))
	l.Error("failed", Error("err", errors.New("boom")))
	l.Debug("hidden", Float("exposure", 1))

	out := buf.String()
	assert.Contains(t, out, "INFO processed image=a.png width=4 elapsed=2ms")
	assert.Contains(t, out, "ERROR failed image=a.png err=boom")
	assert.NotContains(t, out, "hidden")
}

func TestStdLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, true)
	l.Debug("run", Float("exposure", 0.5))
	l.Warn("slow")
	assert.Contains(t, buf.String(), "DEBUG run exposure=0.5")
	assert.Contains(t, buf.String(), "WARN slow")
}

func TestWithDoesNotLeakBetweenChildren(t *testing.T) {
	var buf bytes.Buffer
	base := NewStdLogger(&buf, false).With(String("a", "1"))
	base.With(String("b", "2"))
	base.Info("msg", String("c", "3"))
	assert.Contains(t, buf.String(), "INFO msg a=1 c=3")
	assert.NotContains(t, buf.String(), "b=2")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.With(Int("k", 1)).Info("nothing")
}
