package commands

import (
	"context"
	"strings"

	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	"expoawards/contexts/exhibition/winners-engine/ports"
)

// SerializedPreview is the flat, id-only form of a preview, safe for a
// JSON-based transient store. Entity references are reduced to primary ids
// and scores to plain floats.
type SerializedPreview struct {
	ExhibitionID string                 `json:"exhibition_id"`
	Items        []SerializedNomination `json:"items"`
}

type SerializedNomination struct {
	NominationID string             `json:"nomination_id"`
	Outcome      string             `json:"outcome"`
	Winners      []SerializedWinner `json:"winners,omitempty"`
}

type SerializedWinner struct {
	ProjectID string  `json:"project_id"`
	Score     float64 `json:"score"`
}

// DroppedRefs lists identifiers that no longer resolved during
// reconstruction. Dropping is deliberate lenient reconciliation: losing one
// nomination's preview must not block confirming the rest, but callers can
// observe what went missing.
type DroppedRefs struct {
	NominationIDs []string
	ProjectIDs    []string
}

func (d DroppedRefs) Empty() bool {
	return len(d.NominationIDs) == 0 && len(d.ProjectIDs) == 0
}

// SerializePreview flattens a preview to its transient-store form.
func SerializePreview(preview entities.WinnerPreview) SerializedPreview {
	serialized := SerializedPreview{
		ExhibitionID: preview.Exhibition.ExhibitionID,
		Items:        make([]SerializedNomination, 0, len(preview.Items)),
	}
	for _, item := range preview.Items {
		node := SerializedNomination{
			NominationID: item.Nomination.NominationID,
			Outcome:      string(item.Outcome),
		}
		for _, winner := range item.Winners {
			node.Winners = append(node.Winners, SerializedWinner{
				ProjectID: winner.Project.ProjectID,
				Score:     winner.Score,
			})
		}
		serialized.Items = append(serialized.Items, node)
	}
	return serialized
}

// DeserializePreview rebuilds a preview with live entities using batched
// loader lookups. Entries whose nomination or project id no longer resolves
// are dropped and reported; a conflict reduced to a single surviving winner
// is downgraded to a decided outcome.
func DeserializePreview(
	ctx context.Context,
	data SerializedPreview,
	loader ports.PreviewLoader,
) (entities.WinnerPreview, DroppedRefs, error) {
	dropped := DroppedRefs{}

	exhibition, err := loader.GetExhibition(ctx, strings.TrimSpace(data.ExhibitionID))
	if err != nil {
		return entities.WinnerPreview{}, dropped, err
	}

	nominationIDs := make([]string, 0, len(data.Items))
	projectIDs := make([]string, 0)
	seenNominations := make(map[string]struct{}, len(data.Items))
	seenProjects := make(map[string]struct{})
	for _, item := range data.Items {
		if _, ok := seenNominations[item.NominationID]; !ok {
			seenNominations[item.NominationID] = struct{}{}
			nominationIDs = append(nominationIDs, item.NominationID)
		}
		for _, winner := range item.Winners {
			if _, ok := seenProjects[winner.ProjectID]; !ok {
				seenProjects[winner.ProjectID] = struct{}{}
				projectIDs = append(projectIDs, winner.ProjectID)
			}
		}
	}

	nominations, err := loader.GetNominationsByIDs(ctx, nominationIDs)
	if err != nil {
		return entities.WinnerPreview{}, dropped, err
	}
	projects, err := loader.GetProjectsByIDs(ctx, projectIDs)
	if err != nil {
		return entities.WinnerPreview{}, dropped, err
	}

	nominationByID := make(map[string]entities.Nomination, len(nominations))
	for _, nomination := range nominations {
		nominationByID[nomination.NominationID] = nomination
	}
	projectByID := make(map[string]entities.Project, len(projects))
	for _, project := range projects {
		projectByID[project.ProjectID] = project
	}

	preview := entities.WinnerPreview{
		Exhibition: exhibition,
		Items:      make([]entities.NominationResult, 0, len(data.Items)),
	}
	for _, item := range data.Items {
		nomination, ok := nominationByID[item.NominationID]
		if !ok {
			dropped.NominationIDs = append(dropped.NominationIDs, item.NominationID)
			continue
		}
		result := entities.NominationResult{
			Nomination: nomination,
			Outcome:    entities.Outcome(item.Outcome),
		}
		for _, winner := range item.Winners {
			project, ok := projectByID[winner.ProjectID]
			if !ok {
				dropped.ProjectIDs = append(dropped.ProjectIDs, winner.ProjectID)
				continue
			}
			result.Winners = append(result.Winners, entities.WinnerCandidate{
				Project: project,
				Score:   winner.Score,
			})
		}
		if result.Outcome == entities.OutcomeConflict && len(result.Winners) == 1 {
			result.Outcome = entities.OutcomeDecided
		}
		if (result.Outcome == entities.OutcomeConflict || result.Outcome == entities.OutcomeDecided) &&
			len(result.Winners) == 0 {
			// Every candidate vanished; the entry carries nothing to commit.
			dropped.NominationIDs = append(dropped.NominationIDs, item.NominationID)
			continue
		}
		preview.Items = append(preview.Items, result)
	}
	return preview, dropped, nil
}
