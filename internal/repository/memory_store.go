package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/pantau-go-api/internal/models"
)

// MemoryStore is an in-process backing store for students, interventions and
// daily logs, used when no database is configured. All operations run under
// a single mutex, so the check-then-create of an active intervention is a
// critical section and the one-active-per-student invariant holds under
// concurrent callers, matching the constraint the SQL backend enforces with
// its partial unique index.
//
// Not-found conditions surface as gorm.ErrRecordNotFound so callers stay
// backend-agnostic.
type MemoryStore struct {
	mu            sync.Mutex
	students      map[string]models.Student
	interventions map[uint]models.Intervention
	logs          []models.DailyLog
	nextID        uint
}

// NewMemoryStore constructs an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		students:      make(map[string]models.Student),
		interventions: make(map[uint]models.Intervention),
		nextID:        1,
	}
}

// Students exposes the store as a StudentRepository.
func (m *MemoryStore) Students() StudentRepository {
	return memoryStudentRepo{store: m}
}

// Interventions exposes the store as an InterventionRepository.
func (m *MemoryStore) Interventions() InterventionRepository {
	return memoryInterventionRepo{store: m}
}

// DailyLogs exposes the store as a DailyLogRepository.
func (m *MemoryStore) DailyLogs() DailyLogRepository {
	return memoryDailyLogRepo{store: m}
}

type memoryStudentRepo struct{ store *MemoryStore }

func (r memoryStudentRepo) Ensure(_ context.Context, id string) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; ok {
		return nil
	}

	now := time.Now()
	m.students[id] = models.Student{
		ID:        id,
		Status:    models.StudentStatusOnTrack,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r memoryStudentRepo) GetByID(_ context.Context, id string) (models.Student, error) {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (r memoryStudentRepo) UpdateStatus(_ context.Context, id string, status string) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	student, ok := m.students[id]
	if !ok {
		student = models.Student{ID: id, CreatedAt: time.Now()}
	}
	student.Status = status
	student.UpdatedAt = time.Now()
	m.students[id] = student
	return nil
}

type memoryDailyLogRepo struct{ store *MemoryStore }

func (r memoryDailyLogRepo) Append(_ context.Context, log *models.DailyLog) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	log.ID = uint(len(m.logs) + 1)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	m.logs = append(m.logs, *log)
	return nil
}

type memoryInterventionRepo struct{ store *MemoryStore }

func (r memoryInterventionRepo) GetByID(_ context.Context, id uint) (models.Intervention, error) {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	intervention, ok := m.interventions[id]
	if !ok {
		return models.Intervention{}, gorm.ErrRecordNotFound
	}
	return intervention, nil
}

func (r memoryInterventionRepo) FindActive(_ context.Context, studentID string) (models.Intervention, error) {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	intervention, ok := m.findActiveLocked(studentID)
	if !ok {
		return models.Intervention{}, gorm.ErrRecordNotFound
	}
	return intervention, nil
}

func (r memoryInterventionRepo) GetOrCreateActive(_ context.Context, studentID string) (models.Intervention, error) {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.findActiveLocked(studentID); ok {
		return existing, nil
	}

	now := time.Now()
	created := models.Intervention{
		ID:        m.nextID,
		StudentID: studentID,
		Status:    models.InterventionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextID++
	m.interventions[created.ID] = created
	return created, nil
}

func (r memoryInterventionRepo) Update(_ context.Context, intervention *models.Intervention) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.interventions[intervention.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if intervention.IsActive() {
		if active, ok := m.findActiveLocked(intervention.StudentID); ok && active.ID != intervention.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	intervention.UpdatedAt = time.Now()
	m.interventions[intervention.ID] = *intervention
	return nil
}

func (r memoryInterventionRepo) CompleteActive(_ context.Context, studentID string, completedAt time.Time) (models.Intervention, error) {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	intervention, ok := m.findActiveLocked(studentID)
	if !ok {
		return models.Intervention{}, gorm.ErrRecordNotFound
	}

	intervention.Status = models.InterventionStatusCompleted
	intervention.CompletedAt = &completedAt
	intervention.UpdatedAt = time.Now()
	m.interventions[intervention.ID] = intervention
	return intervention, nil
}

// findActiveLocked picks the most recently created active intervention.
// Callers must hold mu.
func (m *MemoryStore) findActiveLocked(studentID string) (models.Intervention, bool) {
	var (
		found  models.Intervention
		exists bool
	)
	for _, intervention := range m.interventions {
		if intervention.StudentID != studentID || !intervention.IsActive() {
			continue
		}
		if !exists || intervention.CreatedAt.After(found.CreatedAt) ||
			(intervention.CreatedAt.Equal(found.CreatedAt) && intervention.ID > found.ID) {
			found = intervention
			exists = true
		}
	}
	return found, exists
}

// LogCount reports how many daily log rows have been appended.
func (m *MemoryStore) LogCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs)
}

// ActiveInterventionCount reports the number of active interventions held
// for a student. Exists so tests can assert the uniqueness invariant.
func (m *MemoryStore) ActiveInterventionCount(studentID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, intervention := range m.interventions {
		if intervention.StudentID == studentID && intervention.IsActive() {
			count++
		}
	}
	return count
}
