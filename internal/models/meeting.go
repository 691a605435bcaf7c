package models

import (
	"time"

	"github.com/google/uuid"
)

// ColorPair двухцветная схема встречи для календаря
type ColorPair struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

var (
	// DefaultColor присваивается встрече без пересечений
	DefaultColor = ColorPair{Primary: "#1e90ff", Secondary: "#D1E8FF"}
	// ConflictColor присваивается встрече, пересекающейся с другой
	ConflictColor = ColorPair{Primary: "#ad2121", Secondary: "#FAE3E3"}
)

type Meeting struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	MeetingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"meetingId"`
	Title     string    `gorm:"not null" json:"title"`
	Start     time.Time `gorm:"column:start_time;not null" json:"start"`
	End       time.Time `gorm:"column:end_time;not null" json:"end"`
	Venue     string    `gorm:"not null" json:"venue"`
	Color     ColorPair `gorm:"embedded;embeddedPrefix:color_" json:"color"`

	// Создатель встречи (админ) и её участник. Неизменяемы после создания.
	AdminID       uuid.UUID `gorm:"type:uuid;not null" json:"adminId"`
	AdminFullName string    `gorm:"not null" json:"adminFullName"`
	AdminUserName string    `gorm:"not null" json:"adminUserName"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	UserFullName  string    `gorm:"not null" json:"userFullName"`
	UserEmail     string    `gorm:"not null" json:"userEmail"`

	CreatedAt time.Time `json:"-"`
}

// MeetingUpdate изменяемые при редактировании поля
type MeetingUpdate struct {
	Title string
	Venue string
	Start time.Time
	End   time.Time
	Color ColorPair
}
