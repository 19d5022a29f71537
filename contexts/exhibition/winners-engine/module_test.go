package winnersengine_test

import (
	"context"
	"errors"
	"testing"

	winnersengine "expoawards/contexts/exhibition/winners-engine"
	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
	httptransport "expoawards/contexts/exhibition/winners-engine/transport/http"
)

func seedModule(module winnersengine.Module, stars map[string][2]int) {
	module.Store.SetExhibition(entities.Exhibition{ExhibitionID: "exh-1", Title: "Grand Expo"})
	module.Store.AddNomination("exh-1", entities.Nomination{NominationID: "nom-1", Title: "Best Stand"})
	module.Store.AddJuror("exh-1", entities.Juror{JurorID: "jury-1", UserID: "user-j1"})
	module.Store.AddJuror("exh-1", entities.Juror{JurorID: "jury-2", UserID: "user-j2"})
	for projectID, pair := range stars {
		module.Store.SetProject(entities.Project{
			ProjectID:     projectID,
			Title:         projectID,
			ExhibitionID:  "exh-1",
			OwnerID:       "owner-" + projectID,
			NominationIDs: []string{"nom-1"},
			Visible:       true,
		})
		module.Store.SetScore(entities.JuryScore{ProjectID: projectID, UserID: "user-j1", Stars: pair[0]})
		module.Store.SetScore(entities.JuryScore{ProjectID: projectID, UserID: "user-j2", Stars: pair[1]})
	}
}

func TestPrepareCommitsWithoutConflicts(t *testing.T) {
	module := winnersengine.NewInMemoryModule(nil)
	seedModule(module, map[string][2]int{
		"proj-1": {5, 5},
		"proj-2": {2, 2},
	})

	resp, err := module.Handler.PrepareWinnersHandler(context.Background(), "operator-1", httptransport.PrepareWinnersRequest{
		ExhibitionID: "exh-1",
	})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if !resp.Committed || resp.NeedsConfirmation {
		t.Fatalf("conflict-free prepare must commit outright: %+v", resp)
	}

	records := module.Store.ListWinners("exh-1")
	if len(records) != 1 || records[0].ProjectID != "proj-1" {
		t.Fatalf("unexpected winner records: %+v", records)
	}
}

func TestPrepareConfirmWorkflowResolvesTie(t *testing.T) {
	module := winnersengine.NewInMemoryModule(nil)
	seedModule(module, map[string][2]int{
		"proj-1": {4, 4},
		"proj-2": {4, 4},
	})

	prepare, err := module.Handler.PrepareWinnersHandler(context.Background(), "operator-1", httptransport.PrepareWinnersRequest{
		ExhibitionID: "exh-1",
	})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if prepare.Committed || !prepare.NeedsConfirmation {
		t.Fatalf("tied prepare must wait for confirmation: %+v", prepare)
	}
	if len(module.Store.ListWinners("exh-1")) != 0 {
		t.Fatalf("nothing may be committed before confirmation")
	}

	stats, err := module.Handler.ConfirmStatsHandler(context.Background(), "operator-1")
	if err != nil {
		t.Fatalf("confirm stats failed: %v", err)
	}
	if stats.Conflicted != 1 || stats.TotalNominations != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	confirm, err := module.Handler.ConfirmWinnersHandler(context.Background(), "operator-1", httptransport.ConfirmWinnersRequest{
		ManualSelection: map[string]string{"nom-1": "proj-2"},
	})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !confirm.Confirmed {
		t.Fatalf("expected confirmation")
	}

	records := module.Store.ListWinners("exh-1")
	if len(records) != 1 || records[0].ProjectID != "proj-2" {
		t.Fatalf("manual selection not committed: %+v", records)
	}

	// Confirmed previews are discarded from the operator's slot.
	if _, err := module.Handler.ConfirmStatsHandler(context.Background(), "operator-1"); !errors.Is(err, domainerrors.ErrPreviewNotFound) {
		t.Fatalf("expected ErrPreviewNotFound after confirm, got %v", err)
	}
}

func TestPrepareRequiresOperator(t *testing.T) {
	module := winnersengine.NewInMemoryModule(nil)
	seedModule(module, map[string][2]int{"proj-1": {5, 5}})

	_, err := module.Handler.PrepareWinnersHandler(context.Background(), "", httptransport.PrepareWinnersRequest{
		ExhibitionID: "exh-1",
	})
	if !errors.Is(err, domainerrors.ErrOperatorRequired) {
		t.Fatalf("expected ErrOperatorRequired, got %v", err)
	}
}

func TestConfirmStatsReportsStaleDrops(t *testing.T) {
	module := winnersengine.NewInMemoryModule(nil)
	seedModule(module, map[string][2]int{
		"proj-1": {4, 4},
		"proj-2": {4, 4},
	})

	if _, err := module.Handler.PrepareWinnersHandler(context.Background(), "operator-1", httptransport.PrepareWinnersRequest{
		ExhibitionID: "exh-1",
	}); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	module.Store.RemoveProject("proj-2")

	stats, err := module.Handler.ConfirmStatsHandler(context.Background(), "operator-1")
	if err != nil {
		t.Fatalf("confirm stats failed: %v", err)
	}
	if len(stats.DroppedProjects) != 1 || stats.DroppedProjects[0] != "proj-2" {
		t.Fatalf("expected proj-2 reported dropped, got %+v", stats)
	}
	if stats.Conflicted != 0 {
		t.Fatalf("conflict must downgrade once only one candidate remains: %+v", stats)
	}
}
