package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "expoawards/contexts/exhibition/winners-engine/application"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	"expoawards/contexts/exhibition/winners-engine/ports"
)

// DefaultTopProjects bounds the highlighted subset of each nomination when
// the caller does not ask for a specific size.
const DefaultTopProjects = 3

// JuryReportUseCase builds the jury control report staff use to audit voting
// progress. It recomputes winners on its own so the report stays usable
// before, during, and after a commit.
type JuryReportUseCase struct {
	Awards ports.AwardRepository
	Logger *slog.Logger
}

// Build assembles the report for one exhibition. topN limits the highlighted
// projects per nomination; values <= 0 fall back to DefaultTopProjects.
func (uc JuryReportUseCase) Build(ctx context.Context, exhibitionID string, topN int) (entities.JuryReport, error) {
	logger := application.ResolveLogger(uc.Logger)
	if topN <= 0 {
		topN = DefaultTopProjects
	}

	exhibition, err := uc.Awards.GetExhibition(ctx, strings.TrimSpace(exhibitionID))
	if err != nil {
		return entities.JuryReport{}, err
	}
	nominations, err := uc.Awards.ListNominations(ctx, exhibition.ExhibitionID)
	if err != nil {
		return entities.JuryReport{}, err
	}
	jurors, err := uc.Awards.ListJurors(ctx, exhibition.ExhibitionID)
	if err != nil {
		return entities.JuryReport{}, err
	}
	projects, err := uc.Awards.ListProjects(ctx, exhibition.ExhibitionID)
	if err != nil {
		return entities.JuryReport{}, err
	}
	scores, err := uc.Awards.ListJuryScores(ctx, exhibition.ExhibitionID)
	if err != nil {
		return entities.JuryReport{}, err
	}

	// Summed stars per (project, user). Upsert semantics keep one score per
	// pair, so the sum is normally the single star value.
	scored := make(map[string]map[string]int)
	for _, score := range scores {
		byUser, ok := scored[score.ProjectID]
		if !ok {
			byUser = make(map[string]int)
			scored[score.ProjectID] = byUser
		}
		byUser[score.UserID] += score.Stars
	}

	report := entities.JuryReport{
		Exhibition: exhibition,
		Jurors:     jurors,
		Totals: entities.ReportTotals{
			TotalJurors:      len(jurors),
			TotalNominations: len(nominations),
		},
	}

	debts := make(map[string]*entities.JurorDebt, len(jurors))
	for _, juror := range jurors {
		debts[juror.JurorID] = &entities.JurorDebt{Juror: juror}
		activity := entities.JurorActivity{Juror: juror}
		for _, byUser := range scored {
			if stars, ok := byUser[juror.UserID]; ok {
				activity.RatingsCount++
				activity.RatingsSum += stars
			}
		}
		report.JuryStats = append(report.JuryStats, activity)
		report.Totals.TotalRatings += activity.RatingsCount
	}

	grouped := groupProjects(nominations, projects)
	for _, nomination := range nominations {
		assigned := grouped[nomination.NominationID]
		if len(assigned) == 0 {
			// Empty nominations carry no audit signal.
			continue
		}

		section := entities.NominationReport{
			Nomination:   nomination,
			ProjectCount: len(assigned),
			JuryTotals:   make(map[string]int, len(jurors)),
			JuryCounts:   make(map[string]int, len(jurors)),
		}
		for _, juror := range jurors {
			section.JuryTotals[juror.JurorID] = 0
			section.JuryCounts[juror.JurorID] = 0
		}

		rows := make([]entities.RankedProject, 0, len(assigned))
		for _, project := range assigned {
			row := entities.RankedProject{
				Project:    project,
				JuryScores: make(map[string]int, len(jurors)),
			}
			for _, juror := range jurors {
				stars, ok := scored[project.ProjectID][juror.UserID]
				if !ok {
					continue
				}
				row.JuryScores[juror.JurorID] = stars
				row.TotalScore += stars
				row.HasRatings = true
				section.JuryTotals[juror.JurorID] += stars
				section.JuryCounts[juror.JurorID]++
			}
			section.TotalScore += row.TotalScore
			rows = append(rows, row)
		}

		// Descending by total score; SliceStable keeps catalog order on ties.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].TotalScore > rows[j].TotalScore
		})

		if topN < len(rows) {
			section.TopProjects = rows[:topN]
			section.OtherProjects = rows[topN:]
		} else {
			section.TopProjects = rows
			section.OtherProjects = []entities.RankedProject{}
		}
		section.Winners = reportWinners(rows, len(jurors))

		for _, juror := range jurors {
			expected := len(assigned)
			actual := section.JuryCounts[juror.JurorID]
			if actual >= expected {
				continue
			}
			debt := debts[juror.JurorID]
			debt.Nominations = append(debt.Nominations, entities.NominationDebt{
				Nomination: nomination,
				Voted:      actual,
				Expected:   expected,
				Missing:    expected - actual,
			})
			debt.TotalMissing += expected - actual
		}

		report.Nominations = append(report.Nominations, section)
		report.Totals.TotalProjects += len(assigned)
	}

	for _, juror := range jurors {
		if debt := debts[juror.JurorID]; debt.TotalMissing > 0 {
			report.NotVoted = append(report.NotVoted, *debt)
		}
	}

	logger.Info("jury report built",
		"event", "winners_jury_report_built",
		"module", "exhibition/winners-engine",
		"layer", "application",
		"exhibition_id", exhibition.ExhibitionID,
		"nominations", len(report.Nominations),
		"not_voted_jurors", len(report.NotVoted),
	)
	return report, nil
}

// reportWinners applies the winner rule on summed scores: every juror must
// have scored every project before any winner is named, then every project
// sharing the maximum total wins.
func reportWinners(rows []entities.RankedProject, jurorCount int) []entities.WinnerCandidate {
	if len(rows) == 0 || jurorCount == 0 {
		return nil
	}
	actual := 0
	for _, row := range rows {
		actual += len(row.JuryScores)
	}
	if actual != jurorCount*len(rows) {
		return nil
	}

	maxScore := rows[0].TotalScore
	if maxScore <= 0 {
		return nil
	}
	winners := make([]entities.WinnerCandidate, 0, 1)
	for _, row := range rows {
		if row.TotalScore == maxScore {
			winners = append(winners, entities.WinnerCandidate{
				Project: row.Project,
				Score:   float64(row.TotalScore),
			})
		}
	}
	return winners
}
