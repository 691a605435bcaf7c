package planner

import "errors"

var (
	ErrMissingMeetingID = errors.New("meetingId parameter is missing")
	ErrMissingUserID    = errors.New("userId parameter is missing")
	ErrInvalidInterval  = errors.New("start must be before end")
)
