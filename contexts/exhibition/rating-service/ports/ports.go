package ports

import (
	"context"
	"time"

	"expoawards/contexts/exhibition/rating-service/domain/entities"
)

// RatingRepository persists star votes with upsert semantics on the
// (project, user) pair.
type RatingRepository interface {
	// Upsert writes the rating, overwriting any previous vote by the same
	// user on the same project. It reports whether the vote was new.
	Upsert(ctx context.Context, rating entities.Rating) (entities.Rating, bool, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Rating, error)
}

// ProjectCatalog resolves the project projection the rating flow validates
// against.
type ProjectCatalog interface {
	GetProject(ctx context.Context, projectID string) (entities.ProjectProjection, error)
}

// ExhibitionCatalog resolves voting-window timestamps for a project's
// exhibition.
type ExhibitionCatalog interface {
	GetExhibition(ctx context.Context, exhibitionID string) (entities.ExhibitionProjection, error)
}

// JuryRoster answers whether a user sits on an exhibition's jury.
type JuryRoster interface {
	IsJuror(ctx context.Context, exhibitionID string, userID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
