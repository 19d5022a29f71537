package commands

import (
	"context"
	"strings"

	application "expoawards/contexts/exhibition/winners-engine/application"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
)

// Commit durably replaces the exhibition's winner records with the preview's
// outcome. The sink performs delete-then-insert as one transaction, so a
// failure leaves the prior records intact. Committing the same preview and
// selection twice yields the same final record set.
//
// manualSelection maps nomination id to the chosen project id for tied
// nominations. An override naming a project outside the candidate list skips
// that nomination rather than recording an unvalidated winner. A tied
// nomination without an override keeps all candidates.
func (uc WinnersUseCase) Commit(
	ctx context.Context,
	preview entities.WinnerPreview,
	manualSelection map[string]string,
) error {
	logger := application.ResolveLogger(uc.Logger)
	exhibitionID := strings.TrimSpace(preview.Exhibition.ExhibitionID)
	if exhibitionID == "" {
		return domainerrors.ErrInvalidWinnersInput
	}

	now := uc.now()
	records := make([]entities.WinnerRecord, 0, len(preview.Items))
	for _, item := range preview.Items {
		if len(item.Winners) == 0 {
			continue
		}

		candidates := item.Winners
		if selected, ok := manualSelection[item.Nomination.NominationID]; ok {
			candidates = filterCandidates(candidates, selected)
			if len(candidates) == 0 {
				logger.Warn("manual selection matches no candidate; nomination skipped",
					"event", "winners_commit_selection_mismatch",
					"module", "exhibition/winners-engine",
					"layer", "application",
					"exhibition_id", exhibitionID,
					"nomination_id", item.Nomination.NominationID,
					"selected_project_id", strings.TrimSpace(selected),
				)
				continue
			}
		}

		for _, candidate := range candidates {
			// A stored preview can be stale relative to re-scoring; never
			// persist a winner that no longer carries a positive score.
			if candidate.Score <= 0 {
				continue
			}
			winnerID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return err
			}
			records = append(records, entities.WinnerRecord{
				WinnerID:     winnerID,
				ExhibitionID: exhibitionID,
				NominationID: item.Nomination.NominationID,
				ExhibitorID:  candidate.Project.OwnerID,
				ProjectID:    candidate.Project.ProjectID,
				Score:        candidate.Score,
				CreatedAt:    now,
			})
		}
	}

	if err := uc.Winners.ReplaceWinners(ctx, exhibitionID, records); err != nil {
		logger.Error("winners commit failed",
			"event", "winners_commit_failed",
			"module", "exhibition/winners-engine",
			"layer", "application",
			"exhibition_id", exhibitionID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("winners committed",
		"event", "winners_committed",
		"module", "exhibition/winners-engine",
		"layer", "application",
		"exhibition_id", exhibitionID,
		"records", len(records),
	)
	return nil
}

func filterCandidates(candidates []entities.WinnerCandidate, projectID string) []entities.WinnerCandidate {
	projectID = strings.TrimSpace(projectID)
	filtered := make([]entities.WinnerCandidate, 0, 1)
	for _, candidate := range candidates {
		if candidate.Project.ProjectID == projectID {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
