package httpadapter

import (
	"context"
	"log/slog"

	"expoawards/contexts/exhibition/rating-service/application/commands"
	"expoawards/contexts/exhibition/rating-service/application/queries"
	httptransport "expoawards/contexts/exhibition/rating-service/transport/http"
)

type Handler struct {
	Ratings commands.RateUseCase
	Stats   queries.StatsUseCase
	Logger  *slog.Logger
}

func (h Handler) RateHandler(
	ctx context.Context,
	userID string,
	req httptransport.RateRequest,
) (httptransport.RateResponse, error) {
	result, err := h.Ratings.Rate(ctx, commands.RateCommand{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Stars:     req.Stars,
	})
	if err != nil {
		return httptransport.RateResponse{}, err
	}
	return httptransport.RateResponse{
		Score:     result.Stats.Total,
		ScoreAvg:  result.Stats.Average,
		Count:     result.Stats.Count,
		IsJury:    result.Rating.IsJury,
		IsNew:     result.IsNew,
		JuryCount: result.Stats.JuryCount,
		JuryAvg:   result.Stats.JuryAverage,
	}, nil
}

func (h Handler) StatsHandler(ctx context.Context, projectID string, userID string) (httptransport.StatsResponse, error) {
	stats, err := h.Stats.ProjectStats(ctx, projectID)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	response := httptransport.StatsResponse{
		ProjectID: stats.ProjectID,
		Score:     stats.Total,
		ScoreAvg:  stats.Average,
		Count:     stats.Count,
		JuryScore: stats.JuryTotal,
		JuryAvg:   stats.JuryAverage,
		JuryCount: stats.JuryCount,
	}
	if userID != "" {
		rating, found, err := h.Stats.UserRating(ctx, projectID, userID)
		if err != nil {
			return httptransport.StatsResponse{}, err
		}
		if found {
			response.UserStars = rating.Stars
		}
	}
	return response, nil
}
