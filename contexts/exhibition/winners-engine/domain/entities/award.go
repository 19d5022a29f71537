package entities

import "time"

// Exhibition is a time-boxed event that owns a nomination list, a juror
// roster, and the portfolio projects competing in it.
type Exhibition struct {
	ExhibitionID string
	Title        string
	Slug         string
	DateStart    time.Time
	DateEnd      time.Time
}

// Nomination is a competition category. Assignment to an exhibition happens
// through the exhibition's nomination list, not the nomination itself.
type Nomination struct {
	NominationID string
	Title        string
	Slug         string
	Sort         int
}

// Project is a participant portfolio. NominationIDs lists the nominations the
// project competes in within its exhibition.
type Project struct {
	ProjectID     string
	Title         string
	ExhibitionID  string
	OwnerID       string
	OwnerName     string
	NominationIDs []string
	Visible       bool
	Sort          int
}

// Juror is a roster member whose scores count toward winner determination.
// Scores are recorded against UserID; JurorID identifies the roster entry.
type Juror struct {
	JurorID string
	UserID  string
	Name    string
}

// JuryScore is one jury-flagged star rating for a project. Upsert semantics
// at the store guarantee at most one row per (project, user).
type JuryScore struct {
	ScoreID   string
	ProjectID string
	UserID    string
	Stars     int
	UpdatedAt time.Time
}

// ProjectScoreSummary aggregates jury scores for one project. JuryAverage is
// the mean over jurors who actually scored, not the full roster; a project
// nobody scored carries zeroes.
type ProjectScoreSummary struct {
	ProjectID   string
	JuryTotal   int
	JuryAverage float64
	JuryCount   int
}

// Outcome is the single decision state of a nomination. Exactly one value
// applies, so contradictory flag combinations cannot be represented.
type Outcome string

const (
	OutcomeDecided          Outcome = "decided"
	OutcomeConflict         Outcome = "conflict"
	OutcomeIncomplete       Outcome = "incomplete"
	OutcomeNoParticipants   Outcome = "no_participants"
	OutcomeNoQualifiedVotes Outcome = "no_qualified_votes"
)

// WinnerCandidate is a project holding the maximum aggregate score in its
// nomination.
type WinnerCandidate struct {
	Project Project
	Score   float64
}

// NominationResult carries the outcome for one nomination. Winners is
// non-empty only for OutcomeDecided (one entry) and OutcomeConflict (ties).
type NominationResult struct {
	Nomination Nomination
	Outcome    Outcome
	Winners    []WinnerCandidate
}

func (r NominationResult) HasWinners() bool {
	return len(r.Winners) > 0
}

// WinnerPreview is a computed, not-yet-committed winner determination for a
// whole exhibition. It lives in memory or in the operator's preview store and
// becomes durable only through a commit.
type WinnerPreview struct {
	Exhibition Exhibition
	Items      []NominationResult
}

// Conflicts returns the nominations whose maximum score is shared by more
// than one project. These require a manual selection before commit.
func (p WinnerPreview) Conflicts() []NominationResult {
	items := make([]NominationResult, 0)
	for _, item := range p.Items {
		if item.Outcome == OutcomeConflict {
			items = append(items, item)
		}
	}
	return items
}

// WinnerRecord is the persisted outcome tuple. At most one per
// (exhibition, nomination) after a confirmed commit, unless a tie was
// deliberately left unresolved.
type WinnerRecord struct {
	WinnerID     string
	ExhibitionID string
	NominationID string
	ExhibitorID  string
	ProjectID    string
	Score        float64
	CreatedAt    time.Time
}
