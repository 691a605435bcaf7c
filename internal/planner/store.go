package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/models"
)

// Store персистентное хранилище встреч
type Store interface {
	CreateMeeting(meeting *models.Meeting) error
	GetMeeting(meetingID uuid.UUID) (*models.Meeting, error)
	FindOverlapping(userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]models.Meeting, error)
	UpdateMeeting(meetingID uuid.UUID, upd models.MeetingUpdate) (*models.Meeting, error)
	RemoveMeeting(meetingID uuid.UUID) (*models.Meeting, error)
}
