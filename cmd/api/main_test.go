package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncRecorder struct {
	bytes.Buffer
	synced int
}

func (r *syncRecorder) Sync() error {
	r.synced++
	return nil
}

func newRecordingLogger(out *syncRecorder) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, out, zapcore.InfoLevel))
}

func TestExecute_FlushesOnFailure(t *testing.T) {
	out := &syncRecorder{}

	code := execute(newRecordingLogger(out), func() error { return errors.New("listen tcp: address in use") })

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, out.synced)
	assert.Contains(t, out.String(), "server exited with error")
	assert.Contains(t, out.String(), "address in use")
}

func TestExecute_CleanShutdown(t *testing.T) {
	out := &syncRecorder{}

	code := execute(newRecordingLogger(out), func() error { return nil })

	assert.Equal(t, 0, code)
	assert.Equal(t, 1, out.synced)
	assert.Empty(t, out.String())
}
