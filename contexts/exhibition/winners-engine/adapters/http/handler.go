package httpadapter

import (
	"context"
	"log/slog"

	"expoawards/contexts/exhibition/winners-engine/application/commands"
	"expoawards/contexts/exhibition/winners-engine/application/queries"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	httptransport "expoawards/contexts/exhibition/winners-engine/transport/http"
)

type Handler struct {
	Winners    commands.WinnersUseCase
	Scoreboard queries.ScoreboardUseCase
	Reports    queries.JuryReportUseCase
	Logger     *slog.Logger
}

// PrepareWinnersHandler runs the prepare step for the operator. The response
// reports whether the result committed outright or awaits confirmation.
func (h Handler) PrepareWinnersHandler(
	ctx context.Context,
	operatorID string,
	req httptransport.PrepareWinnersRequest,
) (httptransport.PrepareWinnersResponse, error) {
	result, err := h.Winners.Prepare(ctx, req.ExhibitionID, operatorID)
	if err != nil {
		return httptransport.PrepareWinnersResponse{}, err
	}
	return httptransport.PrepareWinnersResponse{
		ExhibitionID:      result.Preview.Exhibition.ExhibitionID,
		Committed:         result.Committed,
		NeedsConfirmation: result.NeedsConfirmation,
		Nominations:       mapNominationOutcomes(result.Preview.Items),
	}, nil
}

func (h Handler) ConfirmStatsHandler(ctx context.Context, operatorID string) (httptransport.ConfirmStatsResponse, error) {
	stats, preview, err := h.Winners.ConfirmStats(ctx, operatorID)
	if err != nil {
		return httptransport.ConfirmStatsResponse{}, err
	}
	return httptransport.ConfirmStatsResponse{
		ExhibitionID:       preview.Exhibition.ExhibitionID,
		TotalNominations:   stats.TotalNominations,
		WithWinners:        stats.WithWinners,
		Undecided:          stats.Undecided,
		Conflicted:         stats.Conflicted,
		ExistingWinners:    stats.ExistingWinners,
		DroppedNominations: stats.DroppedNominationID,
		DroppedProjects:    stats.DroppedProjectID,
		Nominations:        mapNominationOutcomes(preview.Items),
	}, nil
}

func (h Handler) ConfirmWinnersHandler(
	ctx context.Context,
	operatorID string,
	req httptransport.ConfirmWinnersRequest,
) (httptransport.ConfirmWinnersResponse, error) {
	if err := h.Winners.Confirm(ctx, operatorID, req.ManualSelection); err != nil {
		return httptransport.ConfirmWinnersResponse{}, err
	}
	return httptransport.ConfirmWinnersResponse{Confirmed: true}, nil
}

func (h Handler) ScoreboardHandler(ctx context.Context, exhibitionID string) (httptransport.ScoreboardResponse, error) {
	board, err := h.Scoreboard.AggregateExhibition(ctx, exhibitionID)
	if err != nil {
		return httptransport.ScoreboardResponse{}, err
	}

	response := httptransport.ScoreboardResponse{
		ExhibitionID: board.Exhibition.ExhibitionID,
		Title:        board.Exhibition.Title,
		JurorCount:   len(board.Jurors),
		Nominations:  make([]httptransport.ScoreboardNomination, 0, len(board.Nominations)),
	}
	for _, nomination := range board.Nominations {
		projects := board.ProjectsByNomination[nomination.NominationID]
		summaries := board.SummariesByNomination[nomination.NominationID]
		node := httptransport.ScoreboardNomination{
			NominationID: nomination.NominationID,
			Title:        nomination.Title,
			Projects:     make([]httptransport.ScoreboardSummary, 0, len(projects)),
		}
		for index, project := range projects {
			summary := summaries[index]
			node.Projects = append(node.Projects, httptransport.ScoreboardSummary{
				ProjectID:   project.ProjectID,
				Title:       project.Title,
				JuryTotal:   summary.JuryTotal,
				JuryAverage: summary.JuryAverage,
				JuryCount:   summary.JuryCount,
			})
		}
		response.Nominations = append(response.Nominations, node)
	}
	return response, nil
}

func (h Handler) JuryReportHandler(ctx context.Context, exhibitionID string, topN int) (httptransport.JuryReportResponse, error) {
	report, err := h.Reports.Build(ctx, exhibitionID, topN)
	if err != nil {
		return httptransport.JuryReportResponse{}, err
	}

	response := httptransport.JuryReportResponse{
		ExhibitionID: report.Exhibition.ExhibitionID,
		Title:        report.Exhibition.Title,
		Jurors:       make([]httptransport.ReportJurorActivity, 0, len(report.JuryStats)),
		Nominations:  make([]httptransport.ReportNomination, 0, len(report.Nominations)),
		NotVoted:     make([]httptransport.ReportJurorDebt, 0, len(report.NotVoted)),
		Totals: httptransport.ReportTotals{
			TotalJurors:      report.Totals.TotalJurors,
			TotalNominations: report.Totals.TotalNominations,
			TotalProjects:    report.Totals.TotalProjects,
			TotalRatings:     report.Totals.TotalRatings,
		},
	}
	for _, activity := range report.JuryStats {
		response.Jurors = append(response.Jurors, httptransport.ReportJurorActivity{
			JurorID:      activity.Juror.JurorID,
			Name:         activity.Juror.Name,
			RatingsCount: activity.RatingsCount,
			RatingsSum:   activity.RatingsSum,
		})
	}
	for _, section := range report.Nominations {
		response.Nominations = append(response.Nominations, httptransport.ReportNomination{
			NominationID:  section.Nomination.NominationID,
			Title:         section.Nomination.Title,
			ProjectCount:  section.ProjectCount,
			TotalScore:    section.TotalScore,
			JuryTotals:    section.JuryTotals,
			JuryCounts:    section.JuryCounts,
			TopProjects:   mapRankedProjects(section.TopProjects),
			OtherProjects: mapRankedProjects(section.OtherProjects),
			Winners:       mapWinnerItems(section.Winners),
		})
	}
	for _, debt := range report.NotVoted {
		node := httptransport.ReportJurorDebt{
			JurorID:      debt.Juror.JurorID,
			Name:         debt.Juror.Name,
			Nominations:  make([]httptransport.ReportNominationDebt, 0, len(debt.Nominations)),
			TotalMissing: debt.TotalMissing,
		}
		for _, item := range debt.Nominations {
			node.Nominations = append(node.Nominations, httptransport.ReportNominationDebt{
				NominationID: item.Nomination.NominationID,
				Title:        item.Nomination.Title,
				Voted:        item.Voted,
				Expected:     item.Expected,
				Missing:      item.Missing,
			})
		}
		response.NotVoted = append(response.NotVoted, node)
	}
	return response, nil
}

func mapNominationOutcomes(items []entities.NominationResult) []httptransport.NominationOutcome {
	outcomes := make([]httptransport.NominationOutcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, httptransport.NominationOutcome{
			NominationID: item.Nomination.NominationID,
			Title:        item.Nomination.Title,
			Outcome:      string(item.Outcome),
			Winners:      mapWinnerItems(item.Winners),
		})
	}
	return outcomes
}

func mapWinnerItems(candidates []entities.WinnerCandidate) []httptransport.WinnerItem {
	if len(candidates) == 0 {
		return nil
	}
	items := make([]httptransport.WinnerItem, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, httptransport.WinnerItem{
			ProjectID: candidate.Project.ProjectID,
			Title:     candidate.Project.Title,
			OwnerID:   candidate.Project.OwnerID,
			OwnerName: candidate.Project.OwnerName,
			Score:     candidate.Score,
		})
	}
	return items
}

func mapRankedProjects(rows []entities.RankedProject) []httptransport.ReportRankedProject {
	items := make([]httptransport.ReportRankedProject, 0, len(rows))
	for _, row := range rows {
		items = append(items, httptransport.ReportRankedProject{
			ProjectID:  row.Project.ProjectID,
			Title:      row.Project.Title,
			OwnerName:  row.Project.OwnerName,
			JuryScores: row.JuryScores,
			TotalScore: row.TotalScore,
			HasRatings: row.HasRatings,
		})
	}
	return items
}
