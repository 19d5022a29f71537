package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "expoawards/contexts/exhibition/rating-service/application"
	"expoawards/contexts/exhibition/rating-service/domain/entities"
	domainerrors "expoawards/contexts/exhibition/rating-service/domain/errors"
	"expoawards/contexts/exhibition/rating-service/ports"
)

type RateUseCase struct {
	Ratings     ports.RatingRepository
	Projects    ports.ProjectCatalog
	Exhibitions ports.ExhibitionCatalog
	Roster      ports.JuryRoster
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type RateCommand struct {
	ProjectID string
	UserID    string
	Stars     int
}

type RateResult struct {
	Rating entities.Rating
	IsNew  bool
	Stats  entities.RatingStats
}

// Rate records or updates the user's star vote on a project.
//
// Owners cannot rate their own project. Projects attached to an exhibition
// follow its windows: jurors vote while the jury window is open and their
// votes carry the jury flag, everyone else votes only after the exhibition
// ends. Projects outside any exhibition accept votes at any time.
func (uc RateUseCase) Rate(ctx context.Context, cmd RateCommand) (RateResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	projectID := strings.TrimSpace(cmd.ProjectID)
	userID := strings.TrimSpace(cmd.UserID)
	if projectID == "" || userID == "" {
		return RateResult{}, domainerrors.ErrInvalidRatingInput
	}
	if cmd.Stars < entities.MinStars || cmd.Stars > entities.MaxStars {
		return RateResult{}, domainerrors.ErrInvalidRatingInput
	}

	project, err := uc.Projects.GetProject(ctx, projectID)
	if err != nil {
		return RateResult{}, err
	}
	if project.OwnerUserID != "" && project.OwnerUserID == userID {
		return RateResult{}, domainerrors.ErrSelfRatingForbidden
	}

	now := uc.now()
	isJury := false
	if strings.TrimSpace(project.ExhibitionID) != "" {
		isJury, err = uc.checkVotingWindow(ctx, project.ExhibitionID, userID, now)
		if err != nil {
			return RateResult{}, err
		}
	}

	ratingID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return RateResult{}, err
	}
	rating, isNew, err := uc.Ratings.Upsert(ctx, entities.Rating{
		RatingID:  ratingID,
		ProjectID: projectID,
		UserID:    userID,
		Stars:     cmd.Stars,
		IsJury:    isJury,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return RateResult{}, err
	}

	stats, err := ComputeStats(ctx, uc.Ratings, projectID)
	if err != nil {
		return RateResult{}, err
	}

	logger.Info("rating recorded",
		"event", "rating_recorded",
		"module", "exhibition/rating-service",
		"layer", "application",
		"project_id", projectID,
		"is_jury", isJury,
		"is_new", isNew,
	)
	return RateResult{Rating: rating, IsNew: isNew, Stats: stats}, nil
}

// checkVotingWindow enforces the exhibition's voting schedule and reports
// whether the vote counts as a jury vote.
func (uc RateUseCase) checkVotingWindow(ctx context.Context, exhibitionID string, userID string, now time.Time) (bool, error) {
	exhibition, err := uc.Exhibitions.GetExhibition(ctx, exhibitionID)
	if err != nil {
		return false, err
	}
	juror, err := uc.Roster.IsJuror(ctx, exhibitionID, userID)
	if err != nil {
		return false, err
	}
	if juror {
		if !exhibition.JuryVotingUntil.IsZero() && !now.Before(exhibition.JuryVotingUntil) {
			return false, domainerrors.ErrJuryVotingClosed
		}
		return true, nil
	}
	if exhibition.DateEnd.IsZero() || now.Before(exhibition.DateEnd) {
		return false, domainerrors.ErrPublicVotingClosed
	}
	return false, nil
}

// ComputeStats folds a project's ratings into totals, with the jury subset
// broken out.
func ComputeStats(ctx context.Context, ratings ports.RatingRepository, projectID string) (entities.RatingStats, error) {
	rows, err := ratings.ListByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return entities.RatingStats{}, err
	}
	stats := entities.RatingStats{ProjectID: strings.TrimSpace(projectID)}
	for _, row := range rows {
		stats.Total += row.Stars
		stats.Count++
		if row.IsJury {
			stats.JuryTotal += row.Stars
			stats.JuryCount++
		}
	}
	if stats.Count > 0 {
		stats.Average = float64(stats.Total) / float64(stats.Count)
	}
	if stats.JuryCount > 0 {
		stats.JuryAverage = float64(stats.JuryTotal) / float64(stats.JuryCount)
	}
	return stats, nil
}

func (uc RateUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
