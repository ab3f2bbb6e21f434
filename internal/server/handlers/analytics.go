package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/agentstation/venuemap/internal/server/cache"
	"github.com/agentstation/venuemap/internal/server/response"
	"github.com/agentstation/venuemap/pkg/analytics"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/venues"
)

// AnalyticsView is the dashboard's derived market view.
type AnalyticsView struct {
	SnapshotID    string                 `json:"snapshotId,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
	Query         string                 `json:"query,omitempty"`
	Benchmark     analytics.Benchmark    `json:"benchmark"`
	Share         []analytics.ShareEntry `json:"share"`
	Top           []venues.Record        `json:"top10"`
	Scatter       []analytics.Point      `json:"scatter"`
	MarketAverage float64                `json:"marketAverage"`
	Series        *analytics.Series      `json:"series,omitempty"`
}

// HandleAnalytics handles GET /api/analytics.
// @Summary Market analytics
// @Description Benchmark of the subject venue, review share, top venues, rating/volume scatter and the review trend
// @Tags market
// @Produce json
// @Param q query string false "Case-insensitive venue name filter"
// @Success 200 {object} response.Response{data=AnalyticsView}
// @Failure 500 {object} response.Response{error=response.Error}
// @Router /api/analytics [get].
func (h *Handlers) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	build := func() (any, error) {
		return h.analytics(r, query)
	}

	var (
		view any
		err  error
	)
	if query == "" {
		view, err = h.cache.Remember(cache.KeyAnalytics, build)
	} else {
		view, err = build()
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build analytics")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, view)
}

func (h *Handlers) analytics(r *http.Request, query string) (*AnalyticsView, error) {
	market, err := h.market(r)
	if err != nil {
		return nil, err
	}
	tgts := h.client.Targets()

	all := market.Latest.Venues()
	records := analytics.Filter(all, query)

	view := &AnalyticsView{
		SnapshotID:    market.Latest.ID(),
		Timestamp:     market.Latest.Timestamp(),
		Query:         query,
		Benchmark:     analytics.NewBenchmark(all, tgts.Subject),
		Top:           analytics.TopByVolume(records, constants.TopVenues),
		Share:         analytics.Share(records),
		Scatter:       analytics.Scatter(records, tgts.Palette),
		MarketAverage: analytics.MarketAverage(all),
	}

	if len(market.History) >= constants.MinHistorySnapshots {
		series, err := analytics.History(market.History)
		if err != nil {
			return nil, err
		}
		view.Series = series.Colorize(tgts.ColorOf)
	}
	return view, nil
}
