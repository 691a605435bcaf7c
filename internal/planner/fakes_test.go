package planner

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/database"
	"github.com/thereayou/meeting-planner/internal/handlers/dto"
	"github.com/thereayou/meeting-planner/internal/models"
	ws "github.com/thereayou/meeting-planner/internal/websocket"
)

type fakeStore struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]models.Meeting

	findErr   error
	createErr error
	updateErr error
	removeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{meetings: make(map[uuid.UUID]models.Meeting)}
}

func (f *fakeStore) CreateMeeting(meeting *models.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	f.meetings[meeting.MeetingID] = *meeting
	return nil
}

func (f *fakeStore) GetMeeting(meetingID uuid.UUID) (*models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	meeting, ok := f.meetings[meetingID]
	if !ok {
		return nil, database.ErrMeetingNotFound
	}
	return &meeting, nil
}

func (f *fakeStore) FindOverlapping(userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}

	var result []models.Meeting
	for _, m := range f.meetings {
		if m.UserID != userID {
			continue
		}
		if excludeID != nil && m.MeetingID == *excludeID {
			continue
		}
		// Тот же предикат, что в database.FindOverlapping
		startInside := !m.Start.Before(start) && !m.Start.After(end)
		endInside := !m.End.Before(start) && !m.End.After(end)
		if startInside || endInside {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeStore) UpdateMeeting(meetingID uuid.UUID, upd models.MeetingUpdate) (*models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}

	meeting, ok := f.meetings[meetingID]
	if !ok {
		return nil, database.ErrMeetingNotFound
	}

	meeting.Title = upd.Title
	meeting.Venue = upd.Venue
	meeting.Start = upd.Start
	meeting.End = upd.End
	meeting.Color = upd.Color
	f.meetings[meetingID] = meeting

	return &meeting, nil
}

func (f *fakeStore) RemoveMeeting(meetingID uuid.UUID) (*models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removeErr != nil {
		return nil, f.removeErr
	}

	meeting, ok := f.meetings[meetingID]
	if !ok {
		return nil, database.ErrMeetingNotFound
	}
	delete(f.meetings, meetingID)

	return &meeting, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.meetings)
}

func (f *fakeStore) byUser(userID uuid.UUID) []models.Meeting {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Meeting
	for _, m := range f.meetings {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	return result
}

type broadcastCall struct {
	roomID uuid.UUID
	msg    ws.Message
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []broadcastCall
}

func (f *fakeBroadcaster) SendToRoom(roomID uuid.UUID, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, broadcastCall{roomID: roomID, msg: msg})
}

func (f *fakeBroadcaster) calls() []broadcastCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]broadcastCall, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeBroadcaster) callsOfType(t ws.MessageType) []broadcastCall {
	var out []broadcastCall
	for _, call := range f.calls() {
		if call.msg.Type == t {
			out = append(out, call)
		}
	}
	return out
}

type mailCall struct {
	from, to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailCall
	err  error
}

func (f *fakeMailer) Send(from, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, mailCall{from: from, to: to, subject: subject, body: htmlBody})
	return f.err
}

func (f *fakeMailer) calls() []mailCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]mailCall, len(f.sent))
	copy(out, f.sent)
	return out
}

type sessionMsg struct {
	msgType ws.MessageType
	resp    dto.APIResponse
}

type fakeSession struct {
	mu   sync.Mutex
	msgs []sessionMsg
}

func (f *fakeSession) SendMessage(msgType ws.MessageType, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg := sessionMsg{msgType: msgType}
	if resp, ok := data.(dto.APIResponse); ok {
		msg.resp = resp
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeSession) received() []sessionMsg {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]sessionMsg, len(f.msgs))
	copy(out, f.msgs)
	return out
}
