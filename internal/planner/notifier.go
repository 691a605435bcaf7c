package planner

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/handlers/dto"
	"github.com/thereayou/meeting-planner/internal/mailer"
	"github.com/thereayou/meeting-planner/internal/models"
	ws "github.com/thereayou/meeting-planner/internal/websocket"
)

type NotificationKind string

const (
	KindCreated   NotificationKind = "created"
	KindEdited    NotificationKind = "edited"
	KindCancelled NotificationKind = "cancelled"
	KindReminder  NotificationKind = "reminder"
)

// RoomBroadcaster рассылка в комнату пользователя
type RoomBroadcaster interface {
	SendToRoom(roomID uuid.UUID, message []byte)
}

// Dispatcher доставляет уведомления: события в комнату владельца и письма
// через mailer. Хранилище он не трогает.
type Dispatcher struct {
	hub    RoomBroadcaster
	mailer mailer.Mailer
	from   string
}

func NewDispatcher(hub RoomBroadcaster, m mailer.Mailer, from string) *Dispatcher {
	return &Dispatcher{hub: hub, mailer: m, from: from}
}

// BroadcastUpdate рассылает update-meeting в комнату владельца встречи
func (d *Dispatcher) BroadcastUpdate(meeting *models.Meeting, message string) {
	d.broadcast(ws.TypeUpdateMeeting, meeting, message)
}

// BroadcastDelete рассылает delete-meeting с последним состоянием встречи
func (d *Dispatcher) BroadcastDelete(meeting *models.Meeting, message string) {
	d.broadcast(ws.TypeDeleteMeeting, meeting, message)
}

func (d *Dispatcher) broadcast(event ws.MessageType, meeting *models.Meeting, message string) {
	resp := dto.APIResponse{
		Error:   false,
		Message: message,
		Status:  200,
		Data:    meeting,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Failed to marshal %s response: %v", event, err)
		return
	}

	msg := ws.Message{
		Type:      event,
		UserID:    meeting.UserID,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", event, err)
		return
	}

	d.hub.SendToRoom(meeting.UserID, payload)
}

// ReminderFired доставляет сработавшее напоминание: событие, именованное
// userId владельца, с полной встречей в data, плюс письмо
func (d *Dispatcher) ReminderFired(meeting *models.Meeting) {
	data, err := json.Marshal(meeting)
	if err != nil {
		log.Printf("Failed to marshal reminder for meeting %s: %v", meeting.MeetingID, err)
		return
	}

	msg := ws.Message{
		Type:      ws.MessageType(meeting.UserID.String()),
		UserID:    meeting.UserID,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal reminder message: %v", err)
		return
	}

	d.hub.SendToRoom(meeting.UserID, payload)

	d.NotifyEmail(KindReminder, meeting)
}

// NotifyEmail отправляет письмо участнику встречи. Ошибка доставки
// логируется и глотается: состояние встречи уже сохранено и разослано.
func (d *Dispatcher) NotifyEmail(kind NotificationKind, meeting *models.Meeting) {
	subject, body := composeEmail(kind, meeting)
	if subject == "" {
		return
	}

	if err := d.mailer.Send(d.from, meeting.UserEmail, subject, body); err != nil {
		log.Printf("Failed to send %s email for meeting %s: %v", kind, meeting.MeetingID, err)
	}
}

const mailTimeLayout = "Monday, January 2, 2006, 3:04 PM"

func composeEmail(kind NotificationKind, m *models.Meeting) (subject, body string) {
	details := fmt.Sprintf(
		"<b>Title: </b>%s<br><b>Venue: </b>%s<br><b>Start: </b>%s<br><b>End: </b>%s",
		m.Title, m.Venue, m.Start.Format(mailTimeLayout), m.End.Format(mailTimeLayout),
	)

	switch kind {
	case KindCreated:
		subject = "New meeting for you"
		body = fmt.Sprintf("Hi <b>%s</b>,<br><br>A new meeting has been created by admin <b>%s</b> for you.<br>Please find the meeting details below: <br>%s<br><br>Regards<br>Meeting Planner Team",
			m.UserFullName, m.AdminFullName, details)

	case KindEdited:
		subject = "Meeting Edited Notification"
		body = fmt.Sprintf("Hi <b>%s</b>,<br><br>A meeting has been edited by admin <b>%s</b>.<br>Please find the meeting details below: <br>%s<br><br>Regards<br>Meeting Planner Team",
			m.UserFullName, m.AdminFullName, details)

	case KindCancelled:
		subject = "Meeting Cancelled Notification"
		body = fmt.Sprintf("Hi <b>%s</b>,<br><br>A meeting has been cancelled by admin <b>%s</b>.<br>Please find the meeting details: <br>%s<br><br>Regards<br>Meeting Planner Team",
			m.UserFullName, m.AdminFullName, details)

	case KindReminder:
		subject = "Upcoming Meeting Notification"
		body = fmt.Sprintf("Hi %s,<br><br>You have an upcoming meeting 15 minutes from now.<br>Please find the meeting details below: <br>%s<br><br>Regards<br>Meeting Planner Team",
			m.UserFullName, details)
	}

	return subject, body
}
