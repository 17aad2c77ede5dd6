package handler

import systemservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/service"

type Handler struct {
	systemService *systemservice.Service
}

func New(systemService *systemservice.Service) *Handler {
	return &Handler{systemService: systemService}
}
