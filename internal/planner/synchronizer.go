package planner

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/database"
	"github.com/thereayou/meeting-planner/internal/handlers/dto"
	"github.com/thereayou/meeting-planner/internal/models"
	ws "github.com/thereayou/meeting-planner/internal/websocket"
)

type IntentKind string

const (
	IntentCreate IntentKind = "create"
	IntentEdit   IntentKind = "edit"
	IntentDelete IntentKind = "delete"
)

// Session сессия-инициатор мутации, получает структурированные ошибки
type Session interface {
	SendMessage(msgType ws.MessageType, data interface{}) error
}

// Intent мутация встречи от одной сессии. Для delete заполнен
// только MeetingID.
type Intent struct {
	Kind    IntentKind
	Meeting dto.MeetingPayload
	Session Session
}

// Synchronizer прогоняет мутации через конвейер
// validate → classify → persist → dispatch. Мутации одного пользователя
// сериализуются его очередью: classify+persist выполняются атомарно
// относительно других мутаций того же владельца, и порядок рассылок по
// одной встрече совпадает с порядком применённых мутаций.
type Synchronizer struct {
	store      Store
	detector   *ConflictDetector
	reminders  *ReminderScheduler
	dispatcher *Dispatcher

	mu     sync.Mutex
	queues map[uuid.UUID]chan *Intent

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSynchronizer(store Store, detector *ConflictDetector, reminders *ReminderScheduler, dispatcher *Dispatcher) *Synchronizer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Synchronizer{
		store:      store,
		detector:   detector,
		reminders:  reminders,
		dispatcher: dispatcher,
		queues:     make(map[uuid.UUID]chan *Intent),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit ставит мутацию в очередь её владельца. Для delete владелец
// неизвестен до выборки встречи — разрешаем его здесь.
func (s *Synchronizer) Submit(intent *Intent) {
	owner := intent.Meeting.UserID

	if intent.Kind == IntentDelete && owner == uuid.Nil {
		if intent.Meeting.MeetingID == uuid.Nil {
			s.report(intent.Session, 400, ErrMissingMeetingID.Error())
			return
		}
		meeting, err := s.store.GetMeeting(intent.Meeting.MeetingID)
		if err != nil {
			if errors.Is(err, database.ErrMeetingNotFound) {
				s.report(intent.Session, 404, "Meeting not found")
			} else {
				log.Printf("Failed to resolve meeting %s owner: %v", intent.Meeting.MeetingID, err)
				s.report(intent.Session, 400, "Internal error: Failed to delete meeting")
			}
			return
		}
		owner = meeting.UserID
	}

	if owner == uuid.Nil {
		s.report(intent.Session, 400, ErrMissingUserID.Error())
		return
	}

	select {
	case s.queue(owner) <- intent:
	case <-s.ctx.Done():
	}
}

func (s *Synchronizer) queue(owner uuid.UUID) chan *Intent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.queues[owner]; ok {
		return ch
	}

	ch := make(chan *Intent, 64)
	s.queues[owner] = ch

	s.wg.Add(1)
	go s.worker(ch)

	return ch
}

func (s *Synchronizer) worker(ch chan *Intent) {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case intent := <-ch:
			s.process(intent)
		}
	}
}

// Stop останавливает воркеры очередей
func (s *Synchronizer) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Synchronizer) process(intent *Intent) {
	switch intent.Kind {
	case IntentCreate:
		s.create(intent)
	case IntentEdit:
		s.edit(intent)
	case IntentDelete:
		s.delete(intent)
	default:
		log.Printf("Unknown intent kind: %s", intent.Kind)
	}
}

func (s *Synchronizer) create(intent *Intent) {
	p := intent.Meeting

	if err := validateMeetingFields(&p); err != nil {
		s.report(intent.Session, 400, err.Error())
		return
	}

	color, err := s.detector.Classify(p.UserID, p.Start, p.End, nil)
	if err != nil {
		log.Printf("Failed to classify new meeting for user %s: %v", p.UserID, err)
		s.report(intent.Session, 500, "Internal Error in finding duplicate Meetings")
		return
	}

	meeting := &models.Meeting{
		MeetingID:     uuid.New(),
		Title:         p.Title,
		Start:         p.Start,
		End:           p.End,
		Venue:         p.Venue,
		Color:         color,
		AdminID:       p.AdminID,
		AdminFullName: p.AdminFullName,
		AdminUserName: p.AdminUserName,
		UserID:        p.UserID,
		UserFullName:  p.UserFullName,
		UserEmail:     p.UserEmail,
	}

	if err := s.store.CreateMeeting(meeting); err != nil {
		log.Printf("Failed to create meeting %s: %v", meeting.MeetingID, err)
		s.report(intent.Session, 400, "Failed to create new meeting")
		return
	}

	s.dispatcher.BroadcastUpdate(meeting, "A new meeting has been scheduled.")
	s.reminders.Arm(meeting)
	s.dispatcher.NotifyEmail(KindCreated, meeting)
}

func (s *Synchronizer) edit(intent *Intent) {
	p := intent.Meeting

	if p.MeetingID == uuid.Nil {
		s.report(intent.Session, 400, ErrMissingMeetingID.Error())
		return
	}
	if err := validateMeetingFields(&p); err != nil {
		s.report(intent.Session, 400, err.Error())
		return
	}

	// Редактируемая встреча не конфликтует сама с собой
	color, err := s.detector.Classify(p.UserID, p.Start, p.End, &p.MeetingID)
	if err != nil {
		log.Printf("Failed to classify meeting %s edit: %v", p.MeetingID, err)
		s.report(intent.Session, 500, "Internal error in finding duplicate meetings")
		return
	}

	updated, err := s.store.UpdateMeeting(p.MeetingID, models.MeetingUpdate{
		Title: p.Title,
		Venue: p.Venue,
		Start: p.Start,
		End:   p.End,
		Color: color,
	})
	if err != nil {
		if errors.Is(err, database.ErrMeetingNotFound) {
			s.report(intent.Session, 404, "Meeting not found")
			return
		}
		log.Printf("Failed to edit meeting %s: %v", p.MeetingID, err)
		s.report(intent.Session, 400, "Internal error: Failed to edit meeting")
		return
	}

	s.dispatcher.BroadcastUpdate(updated, "Meeting saved")
	s.reminders.Arm(updated)
	s.dispatcher.NotifyEmail(KindEdited, updated)
}

func (s *Synchronizer) delete(intent *Intent) {
	meetingID := intent.Meeting.MeetingID

	if meetingID == uuid.Nil {
		s.report(intent.Session, 400, ErrMissingMeetingID.Error())
		return
	}

	deleted, err := s.store.RemoveMeeting(meetingID)
	if err != nil {
		if errors.Is(err, database.ErrMeetingNotFound) {
			s.report(intent.Session, 404, "Meeting not found")
			return
		}
		log.Printf("Failed to delete meeting %s: %v", meetingID, err)
		s.report(intent.Session, 400, "Internal error: Failed to delete meeting")
		return
	}

	s.dispatcher.BroadcastDelete(deleted, "Meeting deleted")
	s.reminders.Cancel(meetingID)
	s.dispatcher.NotifyEmail(KindCancelled, deleted)
}

// report возвращает структурированную ошибку сессии-инициатору.
// В комнату ошибки не рассылаются.
func (s *Synchronizer) report(session Session, status int, message string) {
	if session == nil {
		return
	}
	if err := session.SendMessage(ws.TypeError, dto.APIResponse{
		Error:   true,
		Message: message,
		Status:  status,
	}); err != nil {
		log.Printf("Failed to report intent error: %v", err)
	}
}

func validateMeetingFields(p *dto.MeetingPayload) error {
	switch {
	case p.Title == "":
		return errors.New("title parameter is missing")
	case p.Venue == "":
		return errors.New("venue parameter is missing")
	case p.Start.IsZero() || p.End.IsZero():
		return errors.New("start/end parameters are missing")
	case !p.Start.Before(p.End):
		return ErrInvalidInterval
	case p.AdminID == uuid.Nil:
		return errors.New("adminId parameter is missing")
	case p.UserEmail == "":
		return errors.New("userEmail parameter is missing")
	}
	return nil
}
