package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 64 * 1024 // 64KB
)

// Роли аутентифицированной сессии
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type ClientMessageHandler interface {
	HandleMessage(client *Client, msg *Message) error
}

// Client живое соединение. До успешного set-user/set-admin личность пуста,
// сессия не состоит ни в одной комнате.
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub

	mu     sync.RWMutex
	userID uuid.UUID
	role   string
	rooms  map[uuid.UUID]bool
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.New(),
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   hub,
		rooms: make(map[uuid.UUID]bool),
	}
}

// SetIdentity фиксирует личность сессии после проверки токена
func (c *Client) SetIdentity(userID uuid.UUID, role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.role = role
}

func (c *Client) Identity() (uuid.UUID, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID, c.role
}

func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID != uuid.Nil
}

func (c *Client) IsAdmin() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.role == RoleAdmin
}

func (c *Client) addRoom(roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[roomID] = true
}

func (c *Client) removeRoom(roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, roomID)
}

// Rooms возвращает копию множества комнат клиента
func (c *Client) Rooms() map[uuid.UUID]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make(map[uuid.UUID]bool, len(c.rooms))
	for roomID := range c.rooms {
		rooms[roomID] = true
	}
	return rooms
}

func (c *Client) IsInRoom(roomID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms[roomID]
}

// ReadPump читает сообщения от клиента
func (c *Client) ReadPump(handler ClientMessageHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if msg.Type == TypePong {
			continue
		}

		if handler != nil {
			if err := handler.HandleMessage(c, &msg); err != nil {
				log.Printf("Error handling message: %v", err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump отправляет сообщения клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendMessage(msgType MessageType, data interface{}) error {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = jsonData
	}

	msgData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.Send <- msgData:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendMessage(TypeError, map[string]string{
		"error": errorMsg,
	})
}
