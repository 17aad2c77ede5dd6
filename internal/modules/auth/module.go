package auth

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/auth/service"
)

type Module struct {
	Gate *service.Gate
}

func New(verifier identity.Verifier, allowlist []string) *Module {
	return &Module{Gate: service.NewGate(verifier, allowlist)}
}
