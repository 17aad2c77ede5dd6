//go:build wireinject
// +build wireinject

package di

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules"
	systemrepo "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/router"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
)

func InitializeApplication(cfg *config.Config) (*Application, func(), error) {
	wire.Build(
		ProvideDB,
		ProvidePuzzleStore,
		systemrepo.NewStatsRepository,
		ProvideRedisClient,
		ProvideLocker,
		ProvideRegistry,
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		ProvideObserver,
		ProvideBlobStore,
		ProvideVerifier,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil, nil
}
