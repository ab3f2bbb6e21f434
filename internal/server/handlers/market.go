package handlers

import (
	"net/http"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/server/cache"
	"github.com/agentstation/venuemap/internal/server/response"
)

// HandleMarket handles GET /api/market.
// @Summary Market snapshots
// @Description Latest snapshot and the snapshot history in ascending time order
// @Tags market
// @Produce json
// @Success 200 {object} response.Response{data=venuemap.Market}
// @Failure 500 {object} response.Response{error=response.Error}
// @Router /api/market [get].
func (h *Handlers) HandleMarket(w http.ResponseWriter, r *http.Request) {
	market, err := h.market(r)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load market")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, market)
}

// market loads the market view through the cache.
func (h *Handlers) market(r *http.Request) (*venuemap.Market, error) {
	v, err := h.cache.Remember(cache.KeyMarket, func() (any, error) {
		return h.client.Market(r.Context())
	})
	if err != nil {
		return nil, err
	}
	return v.(*venuemap.Market), nil
}
