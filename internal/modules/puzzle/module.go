package puzzle

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/metrics"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/handler"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/redisx"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(opts service.Options, puzzleStore repo.PuzzleStore, blobs storage.BlobStore, observer metrics.Observer, locker redisx.Locker) *Module {
	moduleService := service.New(opts, puzzleStore, blobs, observer, locker)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
