package ratingservice

import (
	"log/slog"

	httpadapter "expoawards/contexts/exhibition/rating-service/adapters/http"
	"expoawards/contexts/exhibition/rating-service/adapters/memory"
	"expoawards/contexts/exhibition/rating-service/application/commands"
	"expoawards/contexts/exhibition/rating-service/application/queries"
	"expoawards/contexts/exhibition/rating-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ratings     ports.RatingRepository
	Projects    ports.ProjectCatalog
	Exhibitions ports.ExhibitionCatalog
	Roster      ports.JuryRoster
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	rateUseCase := commands.RateUseCase{
		Ratings:     deps.Ratings,
		Projects:    deps.Projects,
		Exhibitions: deps.Exhibitions,
		Roster:      deps.Roster,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	statsUseCase := queries.StatsUseCase{
		Ratings: deps.Ratings,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ratings: rateUseCase,
			Stats:   statsUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ratings:     store,
		Projects:    store,
		Exhibitions: store,
		Roster:      store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
