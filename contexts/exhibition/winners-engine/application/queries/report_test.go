package queries_test

import (
	"context"
	"testing"

	"expoawards/contexts/exhibition/winners-engine/adapters/memory"
	"expoawards/contexts/exhibition/winners-engine/application/queries"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
)

func seedReportExhibition(store *memory.Store) {
	store.SetExhibition(entities.Exhibition{ExhibitionID: "exh-1", Title: "Autumn Expo"})
	store.AddNomination("exh-1", entities.Nomination{NominationID: "nom-1", Title: "Best Stand"})
	store.AddNomination("exh-1", entities.Nomination{NominationID: "nom-empty", Title: "Empty"})
	store.AddJuror("exh-1", entities.Juror{JurorID: "jury-1", UserID: "user-j1", Name: "First Juror"})
	store.AddJuror("exh-1", entities.Juror{JurorID: "jury-2", UserID: "user-j2", Name: "Second Juror"})
	for index, id := range []string{"proj-1", "proj-2", "proj-3", "proj-4"} {
		store.SetProject(entities.Project{
			ProjectID:     id,
			Title:         id,
			ExhibitionID:  "exh-1",
			OwnerID:       "owner-" + id,
			NominationIDs: []string{"nom-1"},
			Visible:       true,
			Sort:          index,
		})
	}
}

func TestJuryReportRankingAndTopSplit(t *testing.T) {
	store := memory.NewStore()
	seedReportExhibition(store)
	// Both jurors score every project; proj-3 leads on summed stars.
	stars := map[string][2]int{
		"proj-1": {3, 3},
		"proj-2": {2, 2},
		"proj-3": {5, 4},
		"proj-4": {1, 1},
	}
	for projectID, pair := range stars {
		store.SetScore(entities.JuryScore{ProjectID: projectID, UserID: "user-j1", Stars: pair[0]})
		store.SetScore(entities.JuryScore{ProjectID: projectID, UserID: "user-j2", Stars: pair[1]})
	}

	useCase := queries.JuryReportUseCase{Awards: store}
	report, err := useCase.Build(context.Background(), "exh-1", 2)
	if err != nil {
		t.Fatalf("build report failed: %v", err)
	}

	if len(report.Nominations) != 1 {
		t.Fatalf("expected empty nomination skipped, got %d sections", len(report.Nominations))
	}
	section := report.Nominations[0]
	if len(section.TopProjects) != 2 || len(section.OtherProjects) != 2 {
		t.Fatalf("unexpected top split: %d top, %d others", len(section.TopProjects), len(section.OtherProjects))
	}
	if section.TopProjects[0].Project.ProjectID != "proj-3" || section.TopProjects[0].TotalScore != 9 {
		t.Fatalf("unexpected leader: %+v", section.TopProjects[0])
	}
	if section.TopProjects[1].Project.ProjectID != "proj-1" {
		t.Fatalf("unexpected runner-up: %s", section.TopProjects[1].Project.ProjectID)
	}
	if len(section.Winners) != 1 || section.Winners[0].Project.ProjectID != "proj-3" {
		t.Fatalf("unexpected winners: %+v", section.Winners)
	}
	if len(report.NotVoted) != 0 {
		t.Fatalf("expected no voting debt, got %+v", report.NotVoted)
	}
	if report.Totals.TotalRatings != 8 {
		t.Fatalf("expected 8 total ratings, got %d", report.Totals.TotalRatings)
	}
}

func TestJuryReportTracksVotingDebt(t *testing.T) {
	store := memory.NewStore()
	seedReportExhibition(store)
	// Second juror skips proj-2 and proj-4.
	for _, id := range []string{"proj-1", "proj-2", "proj-3", "proj-4"} {
		store.SetScore(entities.JuryScore{ProjectID: id, UserID: "user-j1", Stars: 4})
	}
	store.SetScore(entities.JuryScore{ProjectID: "proj-1", UserID: "user-j2", Stars: 4})
	store.SetScore(entities.JuryScore{ProjectID: "proj-3", UserID: "user-j2", Stars: 4})

	useCase := queries.JuryReportUseCase{Awards: store}
	report, err := useCase.Build(context.Background(), "exh-1", 0)
	if err != nil {
		t.Fatalf("build report failed: %v", err)
	}

	if len(report.NotVoted) != 1 {
		t.Fatalf("expected one juror in debt, got %d", len(report.NotVoted))
	}
	debt := report.NotVoted[0]
	if debt.Juror.JurorID != "jury-2" || debt.TotalMissing != 2 {
		t.Fatalf("unexpected debt: %+v", debt)
	}
	// Incomplete voting withholds winners.
	if len(report.Nominations[0].Winners) != 0 {
		t.Fatalf("expected no winners before voting completes, got %+v", report.Nominations[0].Winners)
	}
}
