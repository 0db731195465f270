package odata

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

var _ resty.Logger = (*restyLogger)(nil)

func TestRestyLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &restyLogger{logger: slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Errorf("attempt %d failed", 1)
	l.Warnf("retrying")

	assert.Contains(t, buf.String(), `"msg":"resty_error","message":"attempt 1 failed"`)
	assert.Contains(t, buf.String(), `"msg":"resty_warning","message":"retrying"`)
}
