package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/models"
	"gorm.io/gorm"
)

var ErrMeetingNotFound = errors.New("meeting not found")

func (d *Database) CreateMeeting(meeting *models.Meeting) error {
	return d.db.Create(meeting).Error
}

func (d *Database) GetMeeting(meetingID uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := d.db.First(&meeting, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// FindOverlapping находит встречи пользователя, у которых начало или конец
// попадает в интервал [start, end] (границы включительно). Встреча, целиком
// накрывающая интервал, под это условие не попадает — так исторически считает
// клиентский календарь, менять предикат нельзя.
func (d *Database) FindOverlapping(userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]models.Meeting, error) {
	query := d.db.
		Where("user_id = ?", userID).
		Where("(start_time >= ? AND start_time <= ?) OR (end_time >= ? AND end_time <= ?)", start, end, start, end)

	if excludeID != nil {
		query = query.Where("meeting_id <> ?", *excludeID)
	}

	var meetings []models.Meeting
	if err := query.Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// UpdateMeeting обновляет изменяемые поля; владелец и идентификаторы не трогаются
func (d *Database) UpdateMeeting(meetingID uuid.UUID, upd models.MeetingUpdate) (*models.Meeting, error) {
	meeting, err := d.GetMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	meeting.Title = upd.Title
	meeting.Venue = upd.Venue
	meeting.Start = upd.Start
	meeting.End = upd.End
	meeting.Color = upd.Color

	if err := d.db.Save(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

// RemoveMeeting удаляет встречу и возвращает её последнее состояние
func (d *Database) RemoveMeeting(meetingID uuid.UUID) (*models.Meeting, error) {
	meeting, err := d.GetMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	if err := d.db.Delete(&models.Meeting{}, "meeting_id = ?", meetingID).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}
