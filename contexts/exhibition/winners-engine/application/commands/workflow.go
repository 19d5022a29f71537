package commands

import (
	"context"
	"encoding/json"
	"strings"

	application "expoawards/contexts/exhibition/winners-engine/application"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
	"expoawards/contexts/exhibition/winners-engine/ports"
)

// PrepareResult reports how a prepare call ended: committed outright, or
// parked in the operator's preview store pending tie resolution.
type PrepareResult struct {
	Preview           entities.WinnerPreview
	Committed         bool
	NeedsConfirmation bool
}

// ConfirmStats is the operator-facing summary of a stored preview.
type ConfirmStats struct {
	TotalNominations    int
	WithWinners         int
	Undecided           int
	Conflicted          int
	ExistingWinners     int
	DroppedNominationID []string
	DroppedProjectID    []string
}

// Prepare builds a preview for the exhibition. Without conflicts the preview
// commits immediately; otherwise it is serialized into the operator's slot of
// the transient store and left for confirmation.
func (uc WinnersUseCase) Prepare(ctx context.Context, exhibitionID string, operatorID string) (PrepareResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(operatorID) == "" {
		return PrepareResult{}, domainerrors.ErrOperatorRequired
	}

	preview, err := uc.BuildPreview(ctx, exhibitionID)
	if err != nil {
		return PrepareResult{}, err
	}

	if len(preview.Conflicts()) == 0 {
		if err := uc.Commit(ctx, preview, nil); err != nil {
			return PrepareResult{}, err
		}
		return PrepareResult{Preview: preview, Committed: true}, nil
	}

	payload, err := json.Marshal(SerializePreview(preview))
	if err != nil {
		return PrepareResult{}, err
	}
	if err := uc.Previews.Put(ctx, ports.StoredPreview{
		OperatorID: strings.TrimSpace(operatorID),
		Payload:    payload,
		ExpiresAt:  uc.now().Add(uc.resolvePreviewTTL()),
	}); err != nil {
		return PrepareResult{}, err
	}

	logger.Info("winners preview stored for confirmation",
		"event", "winners_preview_stored",
		"module", "exhibition/winners-engine",
		"layer", "application",
		"exhibition_id", preview.Exhibition.ExhibitionID,
		"operator_id", strings.TrimSpace(operatorID),
		"conflicts", len(preview.Conflicts()),
	)
	return PrepareResult{Preview: preview, NeedsConfirmation: true}, nil
}

// ConfirmStats reloads the operator's stored preview and summarizes it for
// review, including a warning count when the exhibition already has committed
// winners that a confirm would overwrite.
func (uc WinnersUseCase) ConfirmStats(ctx context.Context, operatorID string) (ConfirmStats, entities.WinnerPreview, error) {
	preview, dropped, err := uc.loadStoredPreview(ctx, operatorID)
	if err != nil {
		return ConfirmStats{}, entities.WinnerPreview{}, err
	}

	existing, err := uc.Winners.CountWinners(ctx, preview.Exhibition.ExhibitionID)
	if err != nil {
		return ConfirmStats{}, entities.WinnerPreview{}, err
	}

	stats := ConfirmStats{
		TotalNominations:    len(preview.Items),
		Conflicted:          len(preview.Conflicts()),
		ExistingWinners:     existing,
		DroppedNominationID: dropped.NominationIDs,
		DroppedProjectID:    dropped.ProjectIDs,
	}
	for _, item := range preview.Items {
		if item.HasWinners() {
			stats.WithWinners++
		} else {
			stats.Undecided++
		}
	}
	return stats, preview, nil
}

// Confirm commits the stored preview with the supplied per-nomination
// overrides, then discards the stored preview.
func (uc WinnersUseCase) Confirm(ctx context.Context, operatorID string, manualSelection map[string]string) error {
	preview, dropped, err := uc.loadStoredPreview(ctx, operatorID)
	if err != nil {
		return err
	}
	if !dropped.Empty() {
		application.ResolveLogger(uc.Logger).Warn("stored preview lost stale references",
			"event", "winners_preview_stale_refs_dropped",
			"module", "exhibition/winners-engine",
			"layer", "application",
			"exhibition_id", preview.Exhibition.ExhibitionID,
			"operator_id", strings.TrimSpace(operatorID),
			"dropped_nominations", len(dropped.NominationIDs),
			"dropped_projects", len(dropped.ProjectIDs),
		)
	}

	if err := uc.Commit(ctx, preview, manualSelection); err != nil {
		return err
	}
	return uc.Previews.Delete(ctx, strings.TrimSpace(operatorID))
}

func (uc WinnersUseCase) loadStoredPreview(ctx context.Context, operatorID string) (entities.WinnerPreview, DroppedRefs, error) {
	if strings.TrimSpace(operatorID) == "" {
		return entities.WinnerPreview{}, DroppedRefs{}, domainerrors.ErrOperatorRequired
	}
	stored, found, err := uc.Previews.Get(ctx, strings.TrimSpace(operatorID), uc.now())
	if err != nil {
		return entities.WinnerPreview{}, DroppedRefs{}, err
	}
	if !found {
		return entities.WinnerPreview{}, DroppedRefs{}, domainerrors.ErrPreviewNotFound
	}

	var data SerializedPreview
	if err := json.Unmarshal(stored.Payload, &data); err != nil {
		return entities.WinnerPreview{}, DroppedRefs{}, err
	}
	return DeserializePreview(ctx, data, uc.Awards)
}
