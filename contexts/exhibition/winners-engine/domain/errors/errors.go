package errors

import "errors"

var (
	ErrInvalidWinnersInput = errors.New("invalid winners input")
	ErrExhibitionNotFound  = errors.New("exhibition not found")
	ErrOperatorRequired    = errors.New("operator id is required")
	ErrPreviewNotFound     = errors.New("no stored winners preview")
	ErrConflict            = errors.New("winners conflict")
)
