package service

import "errors"

var (
	// ErrNoSavedCredentials indicates AutoLogin found nothing stored.
	ErrNoSavedCredentials = errors.New("no saved credentials")

	// ErrNoSchoolYear indicates the profile lists no pupil enrollment to
	// derive a school year from.
	ErrNoSchoolYear = errors.New("no school year found on profile")

	// ErrEmptyMessage indicates an attempt to send a blank message.
	ErrEmptyMessage = errors.New("message is empty")
)
