package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/meeting-planner/internal/models"
)

func seedMeeting(store *fakeStore, userID uuid.UUID, start, end time.Time) uuid.UUID {
	meeting := &models.Meeting{
		MeetingID: uuid.New(),
		Title:     "standup",
		Venue:     "room 1",
		Start:     start,
		End:       end,
		Color:     models.DefaultColor,
		AdminID:   uuid.New(),
		UserID:    userID,
		UserEmail: "user@example.com",
	}
	store.CreateMeeting(meeting)
	return meeting.MeetingID
}

func TestClassifyNoMeetingsYieldsDefault(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	color, err := detector.Classify(uuid.New(), base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, color)
}

func TestClassifyStartInsideYieldsConflict(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)
	userID := uuid.New()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedMeeting(store, userID, base.Add(30*time.Minute), base.Add(2*time.Hour))

	color, err := detector.Classify(userID, base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.ConflictColor, color)
}

func TestClassifyEndInsideYieldsConflict(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)
	userID := uuid.New()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedMeeting(store, userID, base.Add(-time.Hour), base.Add(15*time.Minute))

	color, err := detector.Classify(userID, base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.ConflictColor, color)
}

func TestClassifyInclusiveEndpoints(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)
	userID := uuid.New()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	// Существующая встреча начинается ровно в конец кандидата
	seedMeeting(store, userID, base.Add(time.Hour), base.Add(2*time.Hour))

	color, err := detector.Classify(userID, base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.ConflictColor, color)
}

func TestClassifyDisjointYieldsDefault(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)
	userID := uuid.New()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedMeeting(store, userID, base.Add(3*time.Hour), base.Add(4*time.Hour))

	color, err := detector.Classify(userID, base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, color)
}

// Кандидат целиком внутри более длинной встречи НЕ считается конфликтом:
// предикат смотрит только на попадание начала или конца существующей встречи
// в интервал кандидата. Это осознанное сохранение исторического поведения,
// на которое завязан клиентский календарь.
func TestClassifyMissesEnclosingMeeting(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)
	userID := uuid.New()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedMeeting(store, userID, base.Add(-time.Hour), base.Add(3*time.Hour))

	color, err := detector.Classify(userID, base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, color)
}

func TestClassifyExcludesGivenMeeting(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)
	userID := uuid.New()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	meetingID := seedMeeting(store, userID, base, base.Add(time.Hour))

	color, err := detector.Classify(userID, base, base.Add(time.Hour), &meetingID)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, color)
}

func TestClassifyIgnoresOtherUsers(t *testing.T) {
	store := newFakeStore()
	detector := NewConflictDetector(store)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedMeeting(store, uuid.New(), base, base.Add(time.Hour))

	color, err := detector.Classify(uuid.New(), base, base.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, color)
}

func TestClassifyStoreErrorSurfaces(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("connection refused")
	detector := NewConflictDetector(store)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	_, err := detector.Classify(uuid.New(), base, base.Add(time.Hour), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.findErr)
}
