package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expoawards/contexts/exhibition/rating-service/adapters/memory"
	"expoawards/contexts/exhibition/rating-service/application/commands"
	"expoawards/contexts/exhibition/rating-service/domain/entities"
	domainerrors "expoawards/contexts/exhibition/rating-service/domain/errors"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newRateUseCase(store *memory.Store) commands.RateUseCase {
	return commands.RateUseCase{
		Ratings:     store,
		Projects:    store,
		Exhibitions: store,
		Roster:      store,
		Clock:       store,
		IDGen:       store,
	}
}

func seedRatingFixtures(store *memory.Store) {
	store.FixedNow = testNow
	store.SetExhibition(entities.ExhibitionProjection{
		ExhibitionID:    "exh-1",
		DateEnd:         testNow.Add(24 * time.Hour),
		JuryVotingUntil: testNow.Add(48 * time.Hour),
	})
	store.SetProject(entities.ProjectProjection{
		ProjectID:    "proj-1",
		ExhibitionID: "exh-1",
		OwnerUserID:  "user-owner",
	})
	store.AddJuror("exh-1", "user-juror")
}

func TestRateJurorInsideWindow(t *testing.T) {
	store := memory.NewStore()
	seedRatingFixtures(store)

	result, err := newRateUseCase(store).Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-juror",
		Stars:     4,
	})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if !result.Rating.IsJury || !result.IsNew {
		t.Fatalf("expected new jury rating, got %+v", result)
	}
	if result.Stats.JuryCount != 1 || result.Stats.JuryAverage != 4 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
}

func TestRateJurorAfterWindowCloses(t *testing.T) {
	store := memory.NewStore()
	seedRatingFixtures(store)
	store.FixedNow = testNow.Add(72 * time.Hour)

	_, err := newRateUseCase(store).Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-juror",
		Stars:     4,
	})
	if !errors.Is(err, domainerrors.ErrJuryVotingClosed) {
		t.Fatalf("expected ErrJuryVotingClosed, got %v", err)
	}
}

func TestRatePublicOpensAfterExhibitionEnds(t *testing.T) {
	store := memory.NewStore()
	seedRatingFixtures(store)

	useCase := newRateUseCase(store)
	_, err := useCase.Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-visitor",
		Stars:     5,
	})
	if !errors.Is(err, domainerrors.ErrPublicVotingClosed) {
		t.Fatalf("expected ErrPublicVotingClosed before the exhibition ends, got %v", err)
	}

	store.FixedNow = testNow.Add(30 * time.Hour)
	result, err := useCase.Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-visitor",
		Stars:     5,
	})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if result.Rating.IsJury {
		t.Fatalf("public vote must not carry the jury flag")
	}
}

func TestRateOwnProjectForbidden(t *testing.T) {
	store := memory.NewStore()
	seedRatingFixtures(store)

	_, err := newRateUseCase(store).Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-owner",
		Stars:     5,
	})
	if !errors.Is(err, domainerrors.ErrSelfRatingForbidden) {
		t.Fatalf("expected ErrSelfRatingForbidden, got %v", err)
	}
}

func TestRateUpsertsByProjectAndUser(t *testing.T) {
	store := memory.NewStore()
	seedRatingFixtures(store)

	useCase := newRateUseCase(store)
	first, err := useCase.Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-juror",
		Stars:     2,
	})
	if err != nil {
		t.Fatalf("first rate failed: %v", err)
	}
	second, err := useCase.Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-1",
		UserID:    "user-juror",
		Stars:     5,
	})
	if err != nil {
		t.Fatalf("second rate failed: %v", err)
	}
	if second.IsNew {
		t.Fatalf("re-vote must not count as new")
	}
	if first.Rating.RatingID != second.Rating.RatingID {
		t.Fatalf("re-vote must keep the rating id")
	}
	if second.Stats.Count != 1 || second.Stats.Total != 5 {
		t.Fatalf("re-vote must overwrite stars, got %+v", second.Stats)
	}
}

func TestRateValidatesStarsRange(t *testing.T) {
	store := memory.NewStore()
	seedRatingFixtures(store)

	for _, stars := range []int{0, 6, -1} {
		_, err := newRateUseCase(store).Rate(context.Background(), commands.RateCommand{
			ProjectID: "proj-1",
			UserID:    "user-juror",
			Stars:     stars,
		})
		if !errors.Is(err, domainerrors.ErrInvalidRatingInput) {
			t.Fatalf("stars=%d: expected ErrInvalidRatingInput, got %v", stars, err)
		}
	}
}

func TestRateProjectOutsideExhibitions(t *testing.T) {
	store := memory.NewStore()
	store.FixedNow = testNow
	store.SetProject(entities.ProjectProjection{
		ProjectID:   "proj-free",
		OwnerUserID: "user-owner",
	})

	result, err := newRateUseCase(store).Rate(context.Background(), commands.RateCommand{
		ProjectID: "proj-free",
		UserID:    "user-visitor",
		Stars:     3,
	})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if result.Rating.IsJury {
		t.Fatalf("standalone project votes are never jury votes")
	}
}
