package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	l := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST", Build: "test"})
	l.Enable(false)
	return l, buf
}

func TestRollbarLogger_prepare(t *testing.T) {
	l, _ := newTestLogger()
	err := errors.New("boom")
	extras := map[string]interface{}{"path": "/v1/auth"}
	p := profile.Profile{ID: "u-1", Name: "Alice"}

	got := l.prepare("failed", []interface{}{err, p, extras, profile.Profile{ID: "u-2"}})
	assert.Equal(t, []interface{}{"failed", err, extras}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	l, buf := newTestLogger()
	l.Warn("invalid admin email", errors.New("mail: no address"))
	assert.Equal(t, "WARN invalid admin email\n  [0] mail: no address\n", buf.String())
}
