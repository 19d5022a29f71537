package queries

import (
	"context"
	"log/slog"
	"strings"

	application "expoawards/contexts/exhibition/winners-engine/application"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	"expoawards/contexts/exhibition/winners-engine/ports"
)

// Scoreboard is the aggregated jury-score view of one exhibition: the loaded
// catalog plus per-nomination score summaries keyed by nomination id.
type Scoreboard struct {
	Exhibition            entities.Exhibition
	Nominations           []entities.Nomination
	Jurors                []entities.Juror
	ProjectsByNomination  map[string][]entities.Project
	SummariesByNomination map[string][]entities.ProjectScoreSummary
}

// ScoreboardUseCase aggregates per-project jury scores per nomination.
// Reads only; absent data yields zero-valued summaries, never an error.
type ScoreboardUseCase struct {
	Awards ports.AwardRepository
	Logger *slog.Logger
}

// AggregateExhibition computes score summaries for every (nomination,
// project) pair reachable through the exhibition's visible projects. Only
// scores cast by roster jurors count; the average divides by how many jurors
// actually scored, not the roster size.
func (uc ScoreboardUseCase) AggregateExhibition(ctx context.Context, exhibitionID string) (Scoreboard, error) {
	logger := application.ResolveLogger(uc.Logger)

	exhibition, err := uc.Awards.GetExhibition(ctx, strings.TrimSpace(exhibitionID))
	if err != nil {
		return Scoreboard{}, err
	}
	nominations, err := uc.Awards.ListNominations(ctx, exhibition.ExhibitionID)
	if err != nil {
		return Scoreboard{}, err
	}
	jurors, err := uc.Awards.ListJurors(ctx, exhibition.ExhibitionID)
	if err != nil {
		return Scoreboard{}, err
	}
	projects, err := uc.Awards.ListProjects(ctx, exhibition.ExhibitionID)
	if err != nil {
		return Scoreboard{}, err
	}
	scores, err := uc.Awards.ListJuryScores(ctx, exhibition.ExhibitionID)
	if err != nil {
		return Scoreboard{}, err
	}

	board := Scoreboard{
		Exhibition:            exhibition,
		Nominations:           nominations,
		Jurors:                jurors,
		ProjectsByNomination:  groupProjects(nominations, projects),
		SummariesByNomination: make(map[string][]entities.ProjectScoreSummary, len(nominations)),
	}

	totals := summarizeScores(jurors, scores)
	for _, nomination := range nominations {
		assigned := board.ProjectsByNomination[nomination.NominationID]
		summaries := make([]entities.ProjectScoreSummary, 0, len(assigned))
		for _, project := range assigned {
			summary := totals[project.ProjectID]
			summary.ProjectID = project.ProjectID
			summaries = append(summaries, summary)
		}
		board.SummariesByNomination[nomination.NominationID] = summaries
	}

	logger.Info("exhibition scoreboard aggregated",
		"event", "winners_scoreboard_aggregated",
		"module", "exhibition/winners-engine",
		"layer", "application",
		"exhibition_id", exhibition.ExhibitionID,
		"nominations", len(nominations),
		"jurors", len(jurors),
		"projects", len(projects),
		"jury_scores", len(scores),
	)
	return board, nil
}

// groupProjects indexes visible projects by nomination, preserving catalog
// order inside each nomination.
func groupProjects(
	nominations []entities.Nomination,
	projects []entities.Project,
) map[string][]entities.Project {
	grouped := make(map[string][]entities.Project, len(nominations))
	for _, nomination := range nominations {
		grouped[nomination.NominationID] = make([]entities.Project, 0)
	}
	for _, project := range projects {
		if !project.Visible {
			continue
		}
		for _, nominationID := range project.NominationIDs {
			assigned, ok := grouped[nominationID]
			if !ok {
				continue
			}
			grouped[nominationID] = append(assigned, project)
		}
	}
	return grouped
}

// summarizeScores folds roster-juror scores into per-project totals. Scores
// from users outside the roster are ignored.
func summarizeScores(
	jurors []entities.Juror,
	scores []entities.JuryScore,
) map[string]entities.ProjectScoreSummary {
	roster := make(map[string]struct{}, len(jurors))
	for _, juror := range jurors {
		roster[juror.UserID] = struct{}{}
	}

	totals := make(map[string]entities.ProjectScoreSummary)
	for _, score := range scores {
		if _, ok := roster[score.UserID]; !ok {
			continue
		}
		summary := totals[score.ProjectID]
		summary.ProjectID = score.ProjectID
		summary.JuryTotal += score.Stars
		summary.JuryCount++
		totals[score.ProjectID] = summary
	}
	for projectID, summary := range totals {
		if summary.JuryCount > 0 {
			summary.JuryAverage = float64(summary.JuryTotal) / float64(summary.JuryCount)
		}
		totals[projectID] = summary
	}
	return totals
}
