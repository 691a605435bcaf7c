package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/handlers/dto"
	"github.com/thereayou/meeting-planner/internal/planner"
	"github.com/thereayou/meeting-planner/internal/websocket"
	"github.com/thereayou/meeting-planner/pkg/auth"
)

// MeetingHandler разбирает сообщения сессии: аутентификация, подписка на
// комнаты и мутации встреч, уходящие в Synchronizer
type MeetingHandler struct {
	verifier *auth.Verifier
	hub      *websocket.Hub
	sync     *planner.Synchronizer
}

func NewMeetingHandler(verifier *auth.Verifier, hub *websocket.Hub, sync *planner.Synchronizer) *MeetingHandler {
	return &MeetingHandler{
		verifier: verifier,
		hub:      hub,
		sync:     sync,
	}
}

func (h *MeetingHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeSetUser:
		return h.handleSetUser(client, msg)

	case websocket.TypeSetAdmin:
		return h.handleSetAdmin(client, msg)

	case websocket.TypeJoinRoom:
		return h.handleJoinRoom(client, msg)

	case websocket.TypeCreateMeeting:
		return h.handleMutation(client, msg, planner.IntentCreate)

	case websocket.TypeEditMeeting:
		return h.handleMutation(client, msg, planner.IntentEdit)

	case websocket.TypeDeleteMeeting:
		return h.handleDelete(client, msg)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		return nil
	}
}

// authenticate проверяет токен сессии; при неудаче шлёт authError только
// этой сессии и возвращает nil
func (h *MeetingHandler) authenticate(client *websocket.Client, msg *websocket.Message) *auth.Identity {
	var payload dto.AuthPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		client.SendMessage(websocket.TypeAuthError, dto.AuthErrorPayload{
			Status: 400,
			Error:  "Auth token payload is malformed",
		})
		return nil
	}

	identity, err := h.verifier.Verify(context.Background(), payload.AuthToken)
	if err != nil {
		client.SendMessage(websocket.TypeAuthError, dto.AuthErrorPayload{
			Status: 500,
			Error:  "Authentication token expired/incorrect",
		})
		return nil
	}
	return identity
}

// handleSetUser аутентифицирует пользователя и сажает его в собственную комнату
func (h *MeetingHandler) handleSetUser(client *websocket.Client, msg *websocket.Message) error {
	identity := h.authenticate(client, msg)
	if identity == nil {
		return nil
	}

	client.SetIdentity(identity.UserID, websocket.RoleUser)
	h.hub.JoinRoom(client, identity.UserID)
	return nil
}

// handleSetAdmin аутентифицирует админа; собственной комнаты у него нет,
// подписка — только явным join-room
func (h *MeetingHandler) handleSetAdmin(client *websocket.Client, msg *websocket.Message) error {
	identity := h.authenticate(client, msg)
	if identity == nil {
		return nil
	}

	if identity.Role != websocket.RoleAdmin {
		client.SendMessage(websocket.TypeAuthError, dto.AuthErrorPayload{
			Status: 500,
			Error:  "Please provide correct auth token",
		})
		return nil
	}

	client.SetIdentity(identity.UserID, websocket.RoleAdmin)
	return nil
}

func (h *MeetingHandler) handleJoinRoom(client *websocket.Client, msg *websocket.Message) error {
	if !client.IsAdmin() {
		return websocket.ErrAdminOnly
	}

	var payload dto.JoinRoomPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return websocket.ErrInvalidMessage
	}
	if payload.UserID == uuid.Nil {
		return websocket.ErrInvalidMessage
	}

	h.hub.JoinRoom(client, payload.UserID)
	return nil
}

func (h *MeetingHandler) handleMutation(client *websocket.Client, msg *websocket.Message, kind planner.IntentKind) error {
	if !client.Authenticated() {
		client.SendMessage(websocket.TypeAuthError, dto.AuthErrorPayload{
			Status: 401,
			Error:  "Session is not authenticated",
		})
		return nil
	}

	var payload dto.MeetingPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return websocket.ErrInvalidMessage
	}

	h.sync.Submit(&planner.Intent{
		Kind:    kind,
		Meeting: payload,
		Session: client,
	})
	return nil
}

func (h *MeetingHandler) handleDelete(client *websocket.Client, msg *websocket.Message) error {
	if !client.Authenticated() {
		client.SendMessage(websocket.TypeAuthError, dto.AuthErrorPayload{
			Status: 401,
			Error:  "Session is not authenticated",
		})
		return nil
	}

	var payload dto.DeleteMeetingPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return websocket.ErrInvalidMessage
	}

	h.sync.Submit(&planner.Intent{
		Kind:    planner.IntentDelete,
		Meeting: dto.MeetingPayload{MeetingID: payload.MeetingID},
		Session: client,
	})
	return nil
}
