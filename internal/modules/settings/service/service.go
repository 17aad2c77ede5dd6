package service

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	moduledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/settings/dto"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

type Service struct {
	supabase config.SupabaseConfig
}

func New(cfg *config.Config) *Service {
	if cfg == nil {
		return &Service{}
	}
	return &Service{supabase: cfg.Supabase}
}

// PublicConfig 只返回 URL 与 anon key，service role key 永不下发
func (s *Service) PublicConfig() (*moduledto.PublicConfigResponse, error) {
	if !s.supabase.PublicConfigured() {
		return nil, platformservice.NewConfigError("Missing Supabase configuration.")
	}
	return &moduledto.PublicConfigResponse{
		SupabaseURL:     s.supabase.URL,
		SupabaseAnonKey: s.supabase.AnonKey,
	}, nil
}
