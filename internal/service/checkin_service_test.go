package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pantau-go-api/internal/dto"
	"github.com/noah-isme/pantau-go-api/internal/models"
	"github.com/noah-isme/pantau-go-api/internal/repository"
)

type stubNotifier struct {
	mu     sync.Mutex
	events []CheckInFailedEvent
}

func (s *stubNotifier) NotifyFailure(_ context.Context, event CheckInFailedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubNotifier) Events() []CheckInFailedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CheckInFailedEvent(nil), s.events...)
}

func newCheckInFixture(t *testing.T) (CheckInService, *repository.MemoryStore, *stubNotifier) {
	t.Helper()

	store := repository.NewMemoryStore()
	notifier := &stubNotifier{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	svc := NewCheckInService(store.Students(), store.Interventions(), store.DailyLogs(), notifier, nil, validate, logger)
	return svc, store, notifier
}

func checkInPayload(studentID string, quizScore, focusMinutes float64) dto.CheckInRequest {
	return dto.CheckInRequest{
		StudentID:    studentID,
		QuizScore:    &quizScore,
		FocusMinutes: &focusMinutes,
	}
}

func TestRecordSuccessfulCheckIn(t *testing.T) {
	svc, store, notifier := newCheckInFixture(t)

	response, err := svc.Record(context.Background(), checkInPayload("s-ok", 9, 75))
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, response.Status)

	student, err := store.Students().GetByID(context.Background(), "s-ok")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, student.Status)

	require.Equal(t, 1, store.LogCount())
	require.Equal(t, 0, store.ActiveInterventionCount("s-ok"))
	require.Empty(t, notifier.Events())
}

func TestRecordFailingCheckIn(t *testing.T) {
	svc, store, notifier := newCheckInFixture(t)

	response, err := svc.Record(context.Background(), checkInPayload("s-fail", 5, 30))
	require.NoError(t, err)
	require.Equal(t, StatusPendingMentorReview, response.Status)

	student, err := store.Students().GetByID(context.Background(), "s-fail")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusNeedsIntervention, student.Status)

	intervention, err := store.Interventions().FindActive(context.Background(), "s-fail")
	require.NoError(t, err)
	require.Equal(t, models.InterventionStatusPending, intervention.Status)
	require.Nil(t, intervention.Task)

	require.Eventually(t, func() bool {
		return len(notifier.Events()) == 1
	}, time.Second, 10*time.Millisecond)

	event := notifier.Events()[0]
	require.Equal(t, "s-fail", event.StudentID)
	require.Equal(t, float64(5), event.QuizScore)
	require.Equal(t, float64(30), event.FocusMinutes)
	require.Equal(t, intervention.ID, event.InterventionID)
}

func TestRepeatedFailuresReuseIntervention(t *testing.T) {
	svc, store, notifier := newCheckInFixture(t)

	for i := 0; i < 4; i++ {
		response, err := svc.Record(context.Background(), checkInPayload("s-repeat", 3, 10))
		require.NoError(t, err)
		require.Equal(t, StatusPendingMentorReview, response.Status)
	}

	require.Equal(t, 1, store.ActiveInterventionCount("s-repeat"))
	require.Equal(t, 4, store.LogCount())

	require.Eventually(t, func() bool {
		return len(notifier.Events()) == 4
	}, time.Second, 10*time.Millisecond)

	first := notifier.Events()[0]
	for _, event := range notifier.Events() {
		require.Equal(t, first.InterventionID, event.InterventionID)
	}
}

func TestConcurrentFailingCheckIns(t *testing.T) {
	svc, store, _ := newCheckInFixture(t)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Record(context.Background(), checkInPayload("s-race", 2, 5))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 1, store.ActiveInterventionCount("s-race"))
	require.Equal(t, workers, store.LogCount())
}

func TestSuccessLeavesActiveInterventionUntouched(t *testing.T) {
	svc, store, _ := newCheckInFixture(t)

	_, err := svc.Record(context.Background(), checkInPayload("s-mixed", 2, 5))
	require.NoError(t, err)

	response, err := svc.Record(context.Background(), checkInPayload("s-mixed", 9, 90))
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, response.Status)

	student, err := store.Students().GetByID(context.Background(), "s-mixed")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, student.Status)

	// a single good day does not auto-complete the open intervention
	require.Equal(t, 1, store.ActiveInterventionCount("s-mixed"))
}

func TestRecordRejectsMissingFields(t *testing.T) {
	svc, store, _ := newCheckInFixture(t)

	quiz := 9.0
	cases := []dto.CheckInRequest{
		{},
		{StudentID: "s-bad"},
		{StudentID: "s-bad", QuizScore: &quiz},
	}

	for _, payload := range cases {
		_, err := svc.Record(context.Background(), payload)
		require.Error(t, err)

		var validationErrors validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrors)
	}

	require.Equal(t, 0, store.LogCount())
}
