package ports

import (
	"context"
	"time"

	"expoawards/contexts/exhibition/winners-engine/domain/entities"
)

// PreviewLoader is the batched lookup capability used when a serialized
// preview is reconstructed. Lookups are by id-set so reconstruction cost is
// bounded by the number of distinct entities.
type PreviewLoader interface {
	GetExhibition(ctx context.Context, exhibitionID string) (entities.Exhibition, error)
	GetNominationsByIDs(ctx context.Context, nominationIDs []string) ([]entities.Nomination, error)
	GetProjectsByIDs(ctx context.Context, projectIDs []string) ([]entities.Project, error)
}

// AwardRepository is the read side of the winners engine.
//
// ListProjects returns only visible projects of the exhibition, in stable
// catalog order. ListJuryScores returns jury-flagged scores cast on the
// exhibition's visible projects; restriction to the juror roster happens in
// the application layer.
type AwardRepository interface {
	PreviewLoader
	ListNominations(ctx context.Context, exhibitionID string) ([]entities.Nomination, error)
	ListJurors(ctx context.Context, exhibitionID string) ([]entities.Juror, error)
	ListProjects(ctx context.Context, exhibitionID string) ([]entities.Project, error)
	ListJuryScores(ctx context.Context, exhibitionID string) ([]entities.JuryScore, error)
}

// WinnerWriter is the transactional write sink. ReplaceWinners deletes every
// existing record of the exhibition and inserts the given set as one
// all-or-nothing operation.
type WinnerWriter interface {
	ReplaceWinners(ctx context.Context, exhibitionID string, records []entities.WinnerRecord) error
	CountWinners(ctx context.Context, exhibitionID string) (int, error)
}

// StoredPreview is a serialized preview parked in the transient store while
// an operator resolves conflicts. One slot per operator; last write wins.
type StoredPreview struct {
	OperatorID string
	Payload    []byte
	ExpiresAt  time.Time
}

type PreviewStore interface {
	Put(ctx context.Context, record StoredPreview) error
	Get(ctx context.Context, operatorID string, now time.Time) (StoredPreview, bool, error)
	Delete(ctx context.Context, operatorID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
