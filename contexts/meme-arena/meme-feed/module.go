package memefeed

import (
	"log/slog"

	"memearena/contexts/meme-arena/meme-feed/adapters/blob"
	httpadapter "memearena/contexts/meme-arena/meme-feed/adapters/http"
	"memearena/contexts/meme-arena/meme-feed/adapters/memory"
	"memearena/contexts/meme-arena/meme-feed/application/commands"
	"memearena/contexts/meme-arena/meme-feed/application/queries"
	"memearena/contexts/meme-arena/meme-feed/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Memes     ports.MemeRepository
	Blobs     ports.BlobStore
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	FeedLimit int
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitMemeUseCase{
				Memes:  deps.Memes,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Upload: commands.UploadMemeUseCase{
				Memes:  deps.Memes,
				Blobs:  deps.Blobs,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			React: commands.ReactUseCase{
				Memes:  deps.Memes,
				Logger: deps.Logger,
			},
			Feed: queries.FeedUseCase{
				Memes:    deps.Memes,
				MaxLimit: deps.FeedLimit,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Memes:  store,
		Blobs:  blob.NewMemoryStore(""),
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
