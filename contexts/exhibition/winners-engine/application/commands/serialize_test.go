package commands_test

import (
	"context"
	"testing"

	"expoawards/contexts/exhibition/winners-engine/adapters/memory"
	"expoawards/contexts/exhibition/winners-engine/application/commands"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	store := memory.NewStore()
	seedPreviewExhibition(store, "proj-1", "proj-2")
	scoreAll(store, map[string][2]int{
		"proj-1": {5, 5},
		"proj-2": {3, 3},
	})

	useCase := newWinnersUseCase(store)
	original, err := useCase.BuildPreview(context.Background(), "exh-1")
	if err != nil {
		t.Fatalf("build preview failed: %v", err)
	}

	restored, dropped, err := commands.DeserializePreview(
		context.Background(),
		commands.SerializePreview(original),
		store,
	)
	if err != nil {
		t.Fatalf("deserialize failed: %v", err)
	}
	if !dropped.Empty() {
		t.Fatalf("expected no dropped refs, got %+v", dropped)
	}
	if restored.Exhibition.ExhibitionID != original.Exhibition.ExhibitionID {
		t.Fatalf("exhibition mismatch: %s", restored.Exhibition.ExhibitionID)
	}
	if len(restored.Items) != len(original.Items) {
		t.Fatalf("item count mismatch: %d vs %d", len(restored.Items), len(original.Items))
	}
	for index, item := range restored.Items {
		want := original.Items[index]
		if item.Nomination.NominationID != want.Nomination.NominationID || item.Outcome != want.Outcome {
			t.Fatalf("item %d mismatch: %+v vs %+v", index, item, want)
		}
		if len(item.Winners) != len(want.Winners) {
			t.Fatalf("item %d winner count mismatch", index)
		}
		for j, winner := range item.Winners {
			if winner.Project.ProjectID != want.Winners[j].Project.ProjectID ||
				winner.Score != want.Winners[j].Score {
				t.Fatalf("item %d winner %d mismatch: %+v", index, j, winner)
			}
		}
	}
}

func TestDeserializeDropsStaleNomination(t *testing.T) {
	store := memory.NewStore()
	seedPreviewExhibition(store, "proj-1")
	scoreAll(store, map[string][2]int{"proj-1": {4, 4}})

	useCase := newWinnersUseCase(store)
	preview, err := useCase.BuildPreview(context.Background(), "exh-1")
	if err != nil {
		t.Fatalf("build preview failed: %v", err)
	}
	data := commands.SerializePreview(preview)

	store.RemoveNomination("nom-1")

	restored, dropped, err := commands.DeserializePreview(context.Background(), data, store)
	if err != nil {
		t.Fatalf("deserialize failed: %v", err)
	}
	if len(restored.Items) != 0 {
		t.Fatalf("stale nomination must be dropped, got %+v", restored.Items)
	}
	if len(dropped.NominationIDs) != 1 || dropped.NominationIDs[0] != "nom-1" {
		t.Fatalf("expected nom-1 reported dropped, got %+v", dropped)
	}
}

func TestDeserializeDowngradesConflictWhenProjectVanishes(t *testing.T) {
	store := memory.NewStore()
	seedPreviewExhibition(store, "proj-1", "proj-2")
	scoreAll(store, map[string][2]int{
		"proj-1": {4, 4},
		"proj-2": {4, 4},
	})

	useCase := newWinnersUseCase(store)
	preview, err := useCase.BuildPreview(context.Background(), "exh-1")
	if err != nil {
		t.Fatalf("build preview failed: %v", err)
	}
	if preview.Items[0].Outcome != entities.OutcomeConflict {
		t.Fatalf("expected tied preview, got %s", preview.Items[0].Outcome)
	}
	data := commands.SerializePreview(preview)

	store.RemoveProject("proj-2")

	restored, dropped, err := commands.DeserializePreview(context.Background(), data, store)
	if err != nil {
		t.Fatalf("deserialize failed: %v", err)
	}
	item := restored.Items[0]
	if item.Outcome != entities.OutcomeDecided {
		t.Fatalf("expected conflict downgraded to decided, got %s", item.Outcome)
	}
	if len(item.Winners) != 1 || item.Winners[0].Project.ProjectID != "proj-1" {
		t.Fatalf("unexpected surviving winner: %+v", item.Winners)
	}
	if len(dropped.ProjectIDs) != 1 || dropped.ProjectIDs[0] != "proj-2" {
		t.Fatalf("expected proj-2 reported dropped, got %+v", dropped)
	}
}
