package settings

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/settings/handler"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/settings/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(cfg *config.Config) *Module {
	moduleService := service.New(cfg)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
