package modules

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/metrics"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/auth"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle"
	puzzlerepo "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	puzzleservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/settings"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system"
	systemrepo "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/redisx"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"
)

type AppModules struct {
	Auth     *auth.Module
	Puzzle   *puzzle.Module
	Settings *settings.Module
	System   *system.Module
}

// New blobs 为 nil 表示对象存储未配置，puzzle 路由会统一返回配置错误
func New(
	cfg *config.Config,
	verifier identity.Verifier,
	puzzleStore puzzlerepo.PuzzleStore,
	statsStore systemrepo.StatsStore,
	blobs storage.BlobStore,
	observer metrics.Observer,
	locker redisx.Locker,
) *AppModules {
	puzzleModule := puzzle.New(puzzleservice.OptionsFromConfig(cfg), puzzleStore, blobs, observer, locker)

	return &AppModules{
		Auth:     auth.New(verifier, cfg.AdminEmails()),
		Puzzle:   puzzleModule,
		Settings: settings.New(cfg),
		System:   system.New(statsStore, puzzleModule.Service),
	}
}
