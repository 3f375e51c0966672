package handlers

import (
	"net/http"

	"github.com/shopstream/storefront/internal/application/analytics"
	"github.com/shopstream/storefront/internal/transport/http/dto"
	"github.com/shopstream/storefront/internal/transport/http/response"
)

type AnalyticsHandler struct {
	svc *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	daily, err := h.svc.Daily(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAnalyticsData(overview, daily))
}
