package planner

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/models"
)

// ReminderLead за сколько до начала встречи срабатывает напоминание
const ReminderLead = 15 * time.Minute

type reminderEntry struct {
	timer   *time.Timer
	meeting *models.Meeting
}

// ReminderScheduler хранит по одному таймеру на meetingId. Повторный Arm
// для того же ключа сначала снимает прежний таймер, так что двух живых
// напоминаний на одну встречу не бывает.
type ReminderScheduler struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*reminderEntry
	onFire  func(*models.Meeting)
	lead    time.Duration
	now     func() time.Time
}

func NewReminderScheduler(onFire func(*models.Meeting)) *ReminderScheduler {
	return &ReminderScheduler{
		entries: make(map[uuid.UUID]*reminderEntry),
		onFire:  onFire,
		lead:    ReminderLead,
		now:     time.Now,
	}
}

// Arm взводит напоминание на start−15м. Прошедшее время срабатывания — не
// ошибка: таймер сработает при первой возможности.
func (s *ReminderScheduler) Arm(meeting *models.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(meeting.MeetingID)

	entry := &reminderEntry{meeting: meeting}
	s.entries[meeting.MeetingID] = entry

	delay := meeting.Start.Add(-s.lead).Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	entry.timer = time.AfterFunc(delay, func() {
		s.fire(meeting.MeetingID, entry)
	})
}

func (s *ReminderScheduler) fire(meetingID uuid.UUID, entry *reminderEntry) {
	s.mu.Lock()
	// Таймер могли снять или перевзвести, пока мы ждали блокировку
	if s.entries[meetingID] != entry {
		s.mu.Unlock()
		return
	}
	delete(s.entries, meetingID)
	s.mu.Unlock()

	if s.onFire != nil {
		s.onFire(entry.meeting)
	}
}

// Cancel снимает напоминание; отсутствие его — не ошибка
func (s *ReminderScheduler) Cancel(meetingID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(meetingID)
}

func (s *ReminderScheduler) cancelLocked(meetingID uuid.UUID) {
	if entry, ok := s.entries[meetingID]; ok {
		entry.timer.Stop()
		delete(s.entries, meetingID)
	}
}

// Pending сообщает, взведено ли напоминание для встречи
func (s *ReminderScheduler) Pending(meetingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[meetingID]
	return ok
}

// Stop снимает все напоминания
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for meetingID, entry := range s.entries {
		entry.timer.Stop()
		delete(s.entries, meetingID)
	}
}
