package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNotifyFailurePostsEvent(t *testing.T) {
	var (
		mu       sync.Mutex
		received []CheckInFailedEvent
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var event CheckInFailedEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))

		mu.Lock()
		received = append(received, event)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, time.Second, nil, "", zerolog.New(io.Discard))
	notifier.NotifyFailure(context.Background(), CheckInFailedEvent{
		StudentID:      "s1",
		QuizScore:      5,
		FocusMinutes:   30,
		InterventionID: 42,
	})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	require.Equal(t, "s1", received[0].StudentID)
	require.Equal(t, float64(5), received[0].QuizScore)
	require.Equal(t, float64(30), received[0].FocusMinutes)
	require.Equal(t, uint(42), received[0].InterventionID)
	require.NotEmpty(t, received[0].EventID)
	require.False(t, received[0].SentAt.IsZero())
}

func TestNotifyFailureSwallowsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, time.Second, nil, "", zerolog.New(io.Discard))

	// must not panic or propagate anything
	notifier.NotifyFailure(context.Background(), CheckInFailedEvent{StudentID: "s1"})
}

func TestNotifyFailureSwallowsConnectionError(t *testing.T) {
	// closed port, nothing listening
	notifier := NewNotifier("http://127.0.0.1:1", 100*time.Millisecond, nil, "", zerolog.New(io.Discard))
	notifier.NotifyFailure(context.Background(), CheckInFailedEvent{StudentID: "s1"})
}

func TestNotifierDisabledWhenUnconfigured(t *testing.T) {
	notifier := NewNotifier("", 0, nil, "", zerolog.New(io.Discard))
	notifier.NotifyFailure(context.Background(), CheckInFailedEvent{StudentID: "s1"})
}
