package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "expoawards/contexts/exhibition/winners-engine/application"
	"expoawards/contexts/exhibition/winners-engine/application/queries"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
	"expoawards/contexts/exhibition/winners-engine/ports"
)

// WinnersUseCase orchestrates the winner determination workflow: build a
// preview, park it in the operator's transient store while ties are resolved,
// and commit the final record set in one transactional replace.
type WinnersUseCase struct {
	Scoreboard queries.ScoreboardUseCase
	Awards     ports.AwardRepository
	Winners    ports.WinnerWriter
	Previews   ports.PreviewStore
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	PreviewTTL time.Duration
	Logger     *slog.Logger
}

// BuildPreview determines the provisional outcome of every nomination.
// Winners are withheld until every roster juror has scored every project in
// the nomination; an early result could flip when the remaining votes arrive.
// Missing data never fails the build, it degrades to an explicit outcome.
func (uc WinnersUseCase) BuildPreview(ctx context.Context, exhibitionID string) (entities.WinnerPreview, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(exhibitionID) == "" {
		return entities.WinnerPreview{}, domainerrors.ErrInvalidWinnersInput
	}

	board, err := uc.Scoreboard.AggregateExhibition(ctx, exhibitionID)
	if err != nil {
		return entities.WinnerPreview{}, err
	}

	preview := entities.WinnerPreview{
		Exhibition: board.Exhibition,
		Items:      make([]entities.NominationResult, 0, len(board.Nominations)),
	}
	for _, nomination := range board.Nominations {
		preview.Items = append(preview.Items, resolveNomination(
			nomination,
			board.ProjectsByNomination[nomination.NominationID],
			board.SummariesByNomination[nomination.NominationID],
			len(board.Jurors),
		))
	}

	logger.Info("winners preview built",
		"event", "winners_preview_built",
		"module", "exhibition/winners-engine",
		"layer", "application",
		"exhibition_id", board.Exhibition.ExhibitionID,
		"nominations", len(preview.Items),
		"conflicts", len(preview.Conflicts()),
	)
	return preview, nil
}

func resolveNomination(
	nomination entities.Nomination,
	projects []entities.Project,
	summaries []entities.ProjectScoreSummary,
	jurorCount int,
) entities.NominationResult {
	result := entities.NominationResult{Nomination: nomination}

	if len(projects) == 0 {
		result.Outcome = entities.OutcomeNoParticipants
		return result
	}

	expected := jurorCount * len(projects)
	actual := 0
	for _, summary := range summaries {
		actual += summary.JuryCount
	}
	if actual < expected {
		result.Outcome = entities.OutcomeIncomplete
		return result
	}

	maxScore := 0.0
	for _, summary := range summaries {
		if summary.JuryAverage > maxScore {
			maxScore = summary.JuryAverage
		}
	}
	if maxScore <= 0 {
		// A zero-valued draw is not a real tie; nobody engaged positively.
		result.Outcome = entities.OutcomeNoQualifiedVotes
		return result
	}

	// summaries[i] describes projects[i]; the scoreboard builds both slices
	// from the same assignment walk.
	for index, summary := range summaries {
		if summary.JuryAverage == maxScore {
			result.Winners = append(result.Winners, entities.WinnerCandidate{
				Project: projects[index],
				Score:   summary.JuryAverage,
			})
		}
	}
	if len(result.Winners) > 1 {
		result.Outcome = entities.OutcomeConflict
	} else {
		result.Outcome = entities.OutcomeDecided
	}
	return result
}

func (uc WinnersUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc WinnersUseCase) resolvePreviewTTL() time.Duration {
	if uc.PreviewTTL <= 0 {
		return 30 * time.Minute
	}
	return uc.PreviewTTL
}
