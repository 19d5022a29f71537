package commands_test

import (
	"context"
	"testing"

	"expoawards/contexts/exhibition/winners-engine/adapters/memory"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
)

func tiedPreview() entities.WinnerPreview {
	return entities.WinnerPreview{
		Exhibition: entities.Exhibition{ExhibitionID: "exh-1"},
		Items: []entities.NominationResult{
			{
				Nomination: entities.Nomination{NominationID: "nom-1"},
				Outcome:    entities.OutcomeConflict,
				Winners: []entities.WinnerCandidate{
					{Project: entities.Project{ProjectID: "proj-1", OwnerID: "owner-1"}, Score: 4},
					{Project: entities.Project{ProjectID: "proj-2", OwnerID: "owner-2"}, Score: 4},
				},
			},
			{
				Nomination: entities.Nomination{NominationID: "nom-2"},
				Outcome:    entities.OutcomeDecided,
				Winners: []entities.WinnerCandidate{
					{Project: entities.Project{ProjectID: "proj-3", OwnerID: "owner-3"}, Score: 5},
				},
			},
			{
				Nomination: entities.Nomination{NominationID: "nom-3"},
				Outcome:    entities.OutcomeIncomplete,
			},
		},
	}
}

func TestCommitManualSelectionResolvesTie(t *testing.T) {
	store := memory.NewStore()
	useCase := newWinnersUseCase(store)

	err := useCase.Commit(context.Background(), tiedPreview(), map[string]string{
		"nom-1": "proj-2",
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	records := store.ListWinners("exh-1")
	if len(records) != 2 {
		t.Fatalf("expected 2 winner records, got %d", len(records))
	}
	byNomination := make(map[string]entities.WinnerRecord, len(records))
	for _, record := range records {
		byNomination[record.NominationID] = record
	}
	if byNomination["nom-1"].ProjectID != "proj-2" || byNomination["nom-1"].ExhibitorID != "owner-2" {
		t.Fatalf("manual selection not honored: %+v", byNomination["nom-1"])
	}
	if byNomination["nom-2"].ProjectID != "proj-3" {
		t.Fatalf("decided nomination not committed: %+v", byNomination["nom-2"])
	}
}

func TestCommitUnresolvedTieKeepsAllCandidates(t *testing.T) {
	store := memory.NewStore()
	useCase := newWinnersUseCase(store)

	if err := useCase.Commit(context.Background(), tiedPreview(), nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	tied := 0
	for _, record := range store.ListWinners("exh-1") {
		if record.NominationID == "nom-1" {
			tied++
		}
	}
	if tied != 2 {
		t.Fatalf("expected both tied candidates recorded, got %d", tied)
	}
}

func TestCommitSkipsMismatchedSelection(t *testing.T) {
	store := memory.NewStore()
	useCase := newWinnersUseCase(store)

	err := useCase.Commit(context.Background(), tiedPreview(), map[string]string{
		"nom-1": "proj-unrelated",
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	for _, record := range store.ListWinners("exh-1") {
		if record.NominationID == "nom-1" {
			t.Fatalf("mismatched selection must skip the nomination, got %+v", record)
		}
	}
}

func TestCommitDiscardsNonPositiveScores(t *testing.T) {
	store := memory.NewStore()
	useCase := newWinnersUseCase(store)

	preview := entities.WinnerPreview{
		Exhibition: entities.Exhibition{ExhibitionID: "exh-1"},
		Items: []entities.NominationResult{
			{
				Nomination: entities.Nomination{NominationID: "nom-1"},
				Outcome:    entities.OutcomeDecided,
				Winners: []entities.WinnerCandidate{
					{Project: entities.Project{ProjectID: "proj-1", OwnerID: "owner-1"}, Score: 0},
				},
			},
		},
	}
	if err := useCase.Commit(context.Background(), preview, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if records := store.ListWinners("exh-1"); len(records) != 0 {
		t.Fatalf("stale zero-score winner must be discarded, got %+v", records)
	}
}

func TestCommitReplacesPriorRecords(t *testing.T) {
	store := memory.NewStore()
	useCase := newWinnersUseCase(store)

	if err := useCase.Commit(context.Background(), tiedPreview(), map[string]string{"nom-1": "proj-1"}); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if err := useCase.Commit(context.Background(), tiedPreview(), map[string]string{"nom-1": "proj-2"}); err != nil {
		t.Fatalf("second commit failed: %v", err)
	}

	records := store.ListWinners("exh-1")
	if len(records) != 2 {
		t.Fatalf("replace must not accumulate records, got %d", len(records))
	}
	for _, record := range records {
		if record.NominationID == "nom-1" && record.ProjectID != "proj-2" {
			t.Fatalf("latest commit must win: %+v", record)
		}
	}
}
