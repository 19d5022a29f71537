package entities

import "time"

// Rating is one user's star vote for a project. The (ProjectID, UserID) pair
// is unique; repeat votes overwrite the stars in place.
type Rating struct {
	RatingID  string
	ProjectID string
	UserID    string
	Stars     int
	IsJury    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	MinStars = 1
	MaxStars = 5
)

// RatingStats summarizes a project's votes, with the jury subset broken out.
type RatingStats struct {
	ProjectID   string
	Total       int
	Average     float64
	Count       int
	JuryTotal   int
	JuryAverage float64
	JuryCount   int
}

// ProjectProjection is the slice of the exhibitor catalog the rating flow
// needs: ownership for the self-vote check and the exhibition link for
// voting-window checks.
type ProjectProjection struct {
	ProjectID    string
	ExhibitionID string
	OwnerUserID  string
}

// ExhibitionProjection carries the two timestamps that gate voting. Jury
// voting stays open until JuryVotingUntil; public voting opens once the
// exhibition has ended.
type ExhibitionProjection struct {
	ExhibitionID    string
	DateEnd         time.Time
	JuryVotingUntil time.Time
}
