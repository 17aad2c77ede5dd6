package system

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/handler"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(statsStore repo.StatsStore, reconciler service.Reconciler) *Module {
	moduleService := service.New(statsStore, reconciler)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
