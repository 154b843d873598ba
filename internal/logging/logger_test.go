package logging

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("WARN"))
	assert.Equal(t, logrus.TraceLevel, GetLevel(" trace "))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("unknown"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
}

type capturingTransport struct {
	events []*sentry.Event
}

func (t *capturingTransport) Configure(sentry.ClientOptions) {}
func (t *capturingTransport) SendEvent(event *sentry.Event) {
	t.events = append(t.events, event)
}
func (t *capturingTransport) Flush(_ time.Duration) bool { return true }
func (t *capturingTransport) FlushWithContext(_ context.Context) bool {
	return true
}
func (t *capturingTransport) Close() {}

func TestSentryHook_Fire(t *testing.T) {
	transport := &capturingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	hook := NewSentryHook(hub, []logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.AddHook(hook)
	logger.SetOutput(io.Discard)

	logger.WithError(errors.New("db down")).WithField("mesocycle_id", 3).Error("load mesocycle")
	logger.Info("not forwarded")

	require.Len(t, transport.events, 1)
	event := transport.events[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	require.NotEmpty(t, event.Exception)
	assert.Equal(t, "db down", event.Exception[0].Value)
	assert.Equal(t, 3, event.Extra["mesocycle_id"])
	assert.Equal(t, "load mesocycle", event.Extra["message"])
}

func TestSentryHook_NilHub(t *testing.T) {
	hook := NewSentryHook(nil, logrus.AllLevels)
	assert.NoError(t, hook.Fire(logrus.NewEntry(logrus.New())))
}
