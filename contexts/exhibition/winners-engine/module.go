package winnersengine

import (
	"log/slog"
	"time"

	httpadapter "expoawards/contexts/exhibition/winners-engine/adapters/http"
	"expoawards/contexts/exhibition/winners-engine/adapters/memory"
	"expoawards/contexts/exhibition/winners-engine/application/commands"
	"expoawards/contexts/exhibition/winners-engine/application/queries"
	"expoawards/contexts/exhibition/winners-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Awards     ports.AwardRepository
	Winners    ports.WinnerWriter
	Previews   ports.PreviewStore
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	PreviewTTL time.Duration
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	scoreboardUseCase := queries.ScoreboardUseCase{
		Awards: deps.Awards,
		Logger: deps.Logger,
	}
	reportUseCase := queries.JuryReportUseCase{
		Awards: deps.Awards,
		Logger: deps.Logger,
	}
	winnersUseCase := commands.WinnersUseCase{
		Scoreboard: scoreboardUseCase,
		Awards:     deps.Awards,
		Winners:    deps.Winners,
		Previews:   deps.Previews,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		PreviewTTL: deps.PreviewTTL,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Winners:    winnersUseCase,
			Scoreboard: scoreboardUseCase,
			Reports:    reportUseCase,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Awards:     store,
		Winners:    store,
		Previews:   store,
		Clock:      store,
		IDGen:      store,
		PreviewTTL: 30 * time.Minute,
		Logger:     logger,
	})
	module.Store = store
	return module
}
