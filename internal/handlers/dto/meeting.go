package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/models"
)

// AuthPayload данные set-user / set-admin
type AuthPayload struct {
	AuthToken string `json:"authToken"`
}

// JoinRoomPayload админская подписка на комнату пользователя
type JoinRoomPayload struct {
	UserID uuid.UUID `json:"userId"`
}

// MeetingPayload структура для входящих мутаций встреч.
// MeetingID пустой при создании — его назначает сервер.
type MeetingPayload struct {
	MeetingID     uuid.UUID `json:"meetingId,omitempty"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Venue         string    `json:"venue"`
	AdminID       uuid.UUID `json:"adminId"`
	AdminFullName string    `json:"adminFullName"`
	AdminUserName string    `json:"adminUserName"`
	UserID        uuid.UUID `json:"userId"`
	UserFullName  string    `json:"userFullName"`
	UserEmail     string    `json:"userEmail"`
}

// DeleteMeetingPayload данные delete-meeting
type DeleteMeetingPayload struct {
	MeetingID uuid.UUID `json:"meetingId"`
}

// AuthErrorPayload структура authError
type AuthErrorPayload struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// APIResponse конверт исходящих уведомлений комнаты
type APIResponse struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    *models.Meeting `json:"data,omitempty"`
}
