package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrUnauthenticated = errors.New("session is not authenticated")
	ErrAdminOnly       = errors.New("admin capability required")
)
