package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
)

func TestForPrefersContextLogger(t *testing.T) {
	var ctxBuf, baseBuf bytes.Buffer
	ctxLogger := slog.New(slog.NewTextHandler(&ctxBuf, nil))
	base := slog.New(slog.NewTextHandler(&baseBuf, nil))

	ctx := ContextWithLogger(context.Background(), ctxLogger)
	For(ctx, base, "create_meeting", "meeting_id", "m1").Info("hello")

	assert.Contains(t, ctxBuf.String(), "usecase=create_meeting")
	assert.Contains(t, ctxBuf.String(), "meeting_id=m1")
	assert.Empty(t, baseBuf.String())
}

func TestForFallsBackToBase(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	For(context.Background(), base, "rebuild_booking").Info("hi")

	assert.Contains(t, buf.String(), "usecase=rebuild_booking")
	assert.Nil(t, FromContext(context.Background()))
}

func TestErrorAttrs(t *testing.T) {
	attrs := ErrorAttrs(httperr.ErrForbidden("not_host"))
	assert.Equal(t, "forbidden", attrs[3])
}
