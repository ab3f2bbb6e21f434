package handlers

import (
	"bytes"
	"net/http"

	"github.com/agentstation/venuemap/internal/server/cache"
	"github.com/agentstation/venuemap/internal/server/response"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/report"
)

var errNoSnapshots = errors.NewNotFoundError("snapshot", "")

// HandleReport handles GET /api/report.
// @Summary Market report
// @Description Markdown briefing of the latest snapshot
// @Tags market
// @Produce text/markdown
// @Success 200 {string} string "Markdown report"
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/report [get].
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	v, err := h.cache.Remember(cache.KeyReport, func() (any, error) {
		market, err := h.market(r)
		if err != nil {
			return nil, err
		}
		if market.Empty() {
			return nil, errNoSnapshots
		}

		tgts := h.client.Targets()
		var buf bytes.Buffer
		err = report.Write(&buf, report.Input{
			Title:         h.reportTitle,
			Location:      tgts.Location,
			SubjectMarker: tgts.Subject,
			Snapshot:      market.Latest,
			History:       market.History,
			Palette:       tgts.Palette,
		})
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v.([]byte))
}
