package queries

import (
	"context"
	"log/slog"
	"strings"

	"expoawards/contexts/exhibition/rating-service/application/commands"
	"expoawards/contexts/exhibition/rating-service/domain/entities"
	domainerrors "expoawards/contexts/exhibition/rating-service/domain/errors"
	"expoawards/contexts/exhibition/rating-service/ports"
)

type StatsUseCase struct {
	Ratings ports.RatingRepository
	Logger  *slog.Logger
}

// ProjectStats returns the vote totals for one project.
func (uc StatsUseCase) ProjectStats(ctx context.Context, projectID string) (entities.RatingStats, error) {
	if strings.TrimSpace(projectID) == "" {
		return entities.RatingStats{}, domainerrors.ErrInvalidRatingInput
	}
	return commands.ComputeStats(ctx, uc.Ratings, projectID)
}

// UserRating returns the caller's current vote on a project, if any.
func (uc StatsUseCase) UserRating(ctx context.Context, projectID string, userID string) (entities.Rating, bool, error) {
	projectID = strings.TrimSpace(projectID)
	userID = strings.TrimSpace(userID)
	if projectID == "" || userID == "" {
		return entities.Rating{}, false, domainerrors.ErrInvalidRatingInput
	}
	rows, err := uc.Ratings.ListByProject(ctx, projectID)
	if err != nil {
		return entities.Rating{}, false, err
	}
	for _, row := range rows {
		if row.UserID == userID {
			return row, true, nil
		}
	}
	return entities.Rating{}, false, nil
}
