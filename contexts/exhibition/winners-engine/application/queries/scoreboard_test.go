package queries_test

import (
	"context"
	"testing"

	"expoawards/contexts/exhibition/winners-engine/adapters/memory"
	"expoawards/contexts/exhibition/winners-engine/application/queries"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
)

func seedExhibition(store *memory.Store) {
	store.SetExhibition(entities.Exhibition{ExhibitionID: "exh-1", Title: "Spring Expo"})
	store.AddNomination("exh-1", entities.Nomination{NominationID: "nom-1", Title: "Best Stand"})
	store.AddJuror("exh-1", entities.Juror{JurorID: "jury-1", UserID: "user-j1", Name: "First Juror"})
	store.AddJuror("exh-1", entities.Juror{JurorID: "jury-2", UserID: "user-j2", Name: "Second Juror"})
	store.SetProject(entities.Project{
		ProjectID:     "proj-1",
		Title:         "Stand A",
		ExhibitionID:  "exh-1",
		OwnerID:       "owner-1",
		NominationIDs: []string{"nom-1"},
		Visible:       true,
	})
	store.SetProject(entities.Project{
		ProjectID:     "proj-2",
		Title:         "Stand B",
		ExhibitionID:  "exh-1",
		OwnerID:       "owner-2",
		NominationIDs: []string{"nom-1"},
		Visible:       true,
	})
}

func TestScoreboardAveragesOverActualScorers(t *testing.T) {
	store := memory.NewStore()
	seedExhibition(store)
	store.SetScore(entities.JuryScore{ProjectID: "proj-1", UserID: "user-j1", Stars: 5})
	store.SetScore(entities.JuryScore{ProjectID: "proj-1", UserID: "user-j2", Stars: 3})
	store.SetScore(entities.JuryScore{ProjectID: "proj-2", UserID: "user-j1", Stars: 4})

	useCase := queries.ScoreboardUseCase{Awards: store}
	board, err := useCase.AggregateExhibition(context.Background(), "exh-1")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	summaries := board.SummariesByNomination["nom-1"]
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].JuryAverage != 4 || summaries[0].JuryCount != 2 {
		t.Fatalf("unexpected summary for proj-1: %+v", summaries[0])
	}
	// Average divides by scorers, not roster size.
	if summaries[1].JuryAverage != 4 || summaries[1].JuryCount != 1 {
		t.Fatalf("unexpected summary for proj-2: %+v", summaries[1])
	}
}

func TestScoreboardIgnoresNonRosterScores(t *testing.T) {
	store := memory.NewStore()
	seedExhibition(store)
	store.SetScore(entities.JuryScore{ProjectID: "proj-1", UserID: "user-j1", Stars: 2})
	store.SetScore(entities.JuryScore{ProjectID: "proj-1", UserID: "user-outsider", Stars: 5})

	useCase := queries.ScoreboardUseCase{Awards: store}
	board, err := useCase.AggregateExhibition(context.Background(), "exh-1")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	summary := board.SummariesByNomination["nom-1"][0]
	if summary.JuryTotal != 2 || summary.JuryCount != 1 {
		t.Fatalf("non-roster score leaked into summary: %+v", summary)
	}
}

func TestScoreboardUnscoredProjectCarriesZeroes(t *testing.T) {
	store := memory.NewStore()
	seedExhibition(store)

	useCase := queries.ScoreboardUseCase{Awards: store}
	board, err := useCase.AggregateExhibition(context.Background(), "exh-1")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	for _, summary := range board.SummariesByNomination["nom-1"] {
		if summary.JuryTotal != 0 || summary.JuryAverage != 0 || summary.JuryCount != 0 {
			t.Fatalf("expected zero summary, got %+v", summary)
		}
	}
}

func TestScoreboardUnknownExhibition(t *testing.T) {
	store := memory.NewStore()
	useCase := queries.ScoreboardUseCase{Awards: store}

	_, err := useCase.AggregateExhibition(context.Background(), "missing")
	if err != domainerrors.ErrExhibitionNotFound {
		t.Fatalf("expected ErrExhibitionNotFound, got %v", err)
	}
}
