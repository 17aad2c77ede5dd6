package di

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/router"
)

type Application struct {
	Config  *config.Config
	Router  *router.Router
	Modules *modules.AppModules
}

func NewApplication(cfg *config.Config, r *router.Router, m *modules.AppModules) *Application {
	return &Application{
		Config:  cfg,
		Router:  r,
		Modules: m,
	}
}
