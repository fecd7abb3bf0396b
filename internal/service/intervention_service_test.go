package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pantau-go-api/internal/dto"
	"github.com/noah-isme/pantau-go-api/internal/models"
	"github.com/noah-isme/pantau-go-api/internal/repository"
)

func newInterventionFixture(t *testing.T) (InterventionService, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	svc := NewInterventionService(store.Students(), store.Interventions(), nil, validate, logger)
	return svc, store
}

func TestAssignWithoutInterventionID(t *testing.T) {
	svc, store := newInterventionFixture(t)

	response, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{
		StudentID: "s-assign",
		Task:      "Read ch.3",
	})
	require.NoError(t, err)
	require.Equal(t, models.InterventionStatusAssigned, response.Status)
	require.NotNil(t, response.Task)
	require.Equal(t, "Read ch.3", *response.Task)

	student, err := store.Students().GetByID(context.Background(), "s-assign")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusRemedial, student.Status)
}

func TestAssignTargetsExistingPendingIntervention(t *testing.T) {
	svc, store := newInterventionFixture(t)

	pending, err := store.Interventions().GetOrCreateActive(context.Background(), "s-target")
	require.NoError(t, err)

	response, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{
		StudentID:      "s-target",
		InterventionID: &pending.ID,
		Task:           "Redo exercises 1-5",
	})
	require.NoError(t, err)
	require.Equal(t, pending.ID, response.ID)
	require.Equal(t, models.InterventionStatusAssigned, response.Status)

	require.Equal(t, 1, store.ActiveInterventionCount("s-target"))
}

func TestAssignUnknownInterventionID(t *testing.T) {
	svc, store := newInterventionFixture(t)

	require.NoError(t, store.Students().Ensure(context.Background(), "s-missing"))

	missing := uint(9999)
	_, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{
		StudentID:      "s-missing",
		InterventionID: &missing,
		Task:           "Read ch.3",
	})
	require.ErrorIs(t, err, ErrInterventionNotFound)

	// the failed assignment must not flip the student to Remedial
	student, err := store.Students().GetByID(context.Background(), "s-missing")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, student.Status)
}

func TestAssignSanitizesTaskText(t *testing.T) {
	svc, _ := newInterventionFixture(t)

	response, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{
		StudentID: "s-clean",
		Task:      "Read <b>ch.3</b> carefully",
	})
	require.NoError(t, err)
	require.NotNil(t, response.Task)
	require.Equal(t, "Read ch.3 carefully", *response.Task)
}

func TestAssignRejectsTaskEmptyAfterSanitization(t *testing.T) {
	svc, store := newInterventionFixture(t)

	_, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{
		StudentID: "s-empty",
		Task:      "<b> </b>",
	})
	require.ErrorIs(t, err, ErrEmptyTask)
	require.Equal(t, 0, store.ActiveInterventionCount("s-empty"))
}

func TestAssignRejectsMissingFields(t *testing.T) {
	svc, _ := newInterventionFixture(t)

	_, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{StudentID: "s-x"})
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)

	_, err = svc.Assign(context.Background(), dto.AssignInterventionRequest{Task: "Read ch.3"})
	require.ErrorAs(t, err, &validationErrors)
}

func TestCompleteClosesActiveIntervention(t *testing.T) {
	svc, store := newInterventionFixture(t)

	_, err := svc.Assign(context.Background(), dto.AssignInterventionRequest{
		StudentID: "s-done",
		Task:      "Read ch.3",
	})
	require.NoError(t, err)

	response, err := svc.Complete(context.Background(), dto.MarkCompleteRequest{StudentID: "s-done"})
	require.NoError(t, err)
	require.True(t, response.OK)
	require.Equal(t, models.StudentStatusOnTrack, response.Status)

	require.Equal(t, 0, store.ActiveInterventionCount("s-done"))

	student, err := store.Students().GetByID(context.Background(), "s-done")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, student.Status)
}

func TestCompleteWithoutActiveInterventionUnlocksStudent(t *testing.T) {
	svc, store := newInterventionFixture(t)

	require.NoError(t, store.Students().Ensure(context.Background(), "s-idle"))
	require.NoError(t, store.Students().UpdateStatus(context.Background(), "s-idle", models.StudentStatusRemedial))

	response, err := svc.Complete(context.Background(), dto.MarkCompleteRequest{StudentID: "s-idle"})
	require.NoError(t, err)
	require.True(t, response.OK)
	require.Equal(t, models.StudentStatusOnTrack, response.Status)

	student, err := store.Students().GetByID(context.Background(), "s-idle")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusOnTrack, student.Status)
}
