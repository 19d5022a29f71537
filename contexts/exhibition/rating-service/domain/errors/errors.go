package errors

import "errors"

var (
	ErrInvalidRatingInput  = errors.New("invalid rating input")
	ErrProjectNotFound     = errors.New("project not found")
	ErrExhibitionNotFound  = errors.New("exhibition not found")
	ErrSelfRatingForbidden = errors.New("rating own project is forbidden")
	ErrJuryVotingClosed    = errors.New("jury voting window is closed")
	ErrPublicVotingClosed  = errors.New("public voting has not opened")
	ErrConflict            = errors.New("rating conflict")
)
