package contestengine

import (
	"log/slog"

	httpadapter "memearena/contexts/meme-arena/contest-engine/adapters/http"
	"memearena/contexts/meme-arena/contest-engine/adapters/memory"
	"memearena/contexts/meme-arena/contest-engine/application/commands"
	"memearena/contexts/meme-arena/contest-engine/application/queries"
	"memearena/contexts/meme-arena/contest-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Contests ports.ContestRepository
	Entries  ports.EntryRepository
	Votes    ports.VoteRepository
	Winners  ports.WinnerRepository
	Memes    ports.MemeCatalog
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	queryUseCase := queries.ContestQueryUseCase{
		Contests: deps.Contests,
		Entries:  deps.Entries,
		Winners:  deps.Winners,
	}
	return Module{
		Handler: httpadapter.Handler{
			Open: commands.OpenContestUseCase{
				Contests: deps.Contests,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			StartVoting: commands.StartVotingUseCase{
				Contests: deps.Contests,
				Logger:   deps.Logger,
			},
			Close: commands.CloseContestUseCase{
				Contests: deps.Contests,
				Entries:  deps.Entries,
				Winners:  deps.Winners,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			Submit: commands.SubmitEntryUseCase{
				Contests: deps.Contests,
				Entries:  deps.Entries,
				Memes:    deps.Memes,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			Vote: commands.CastVoteUseCase{
				Entries: deps.Entries,
				Votes:   deps.Votes,
				Clock:   deps.Clock,
				IDGen:   deps.IDGen,
				Logger:  deps.Logger,
			},
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Contests: store,
		Entries:  store,
		Votes:    store,
		Winners:  store,
		Memes:    store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
