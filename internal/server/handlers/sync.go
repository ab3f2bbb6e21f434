package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/server/response"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// SyncRequest is the optional body of POST /api/sync. A nil Targets uses
// the configured targets.
type SyncRequest struct {
	Targets *venues.Targets `json:"targets,omitempty"`
}

// SyncResult is the body of a successful sync.
type SyncResult struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Snapshot *venues.Snapshot `json:"snapshot"`
}

// HandleSync handles POST /api/sync.
// @Summary Run a sync
// @Description Query the model provider, reconcile its answer and store a snapshot
// @Tags sync
// @Accept json
// @Produce json
// @Param request body SyncRequest false "Target override"
// @Success 200 {object} response.Response{data=SyncResult}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 422 {object} response.Response{error=response.Error}
// @Failure 502 {object} response.Response{error=response.Error}
// @Router /api/sync [post].
func (h *Handlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := decodeOptional(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	var opts []venuemap.SyncOption
	if req.Targets != nil {
		tgts := *req.Targets
		if len(tgts) == 0 {
			response.BadRequest(w, "No targets", "targets must list at least one venue")
			return
		}
		for i, t := range tgts {
			if strings.TrimSpace(t.Name) == "" {
				response.BadRequest(w, "Invalid target", "target "+strconv.Itoa(i)+" has no name")
				return
			}
		}
		opts = append(opts, venuemap.WithSyncTargets(tgts))
	}

	snap, err := h.client.Sync(r.Context(), opts...)
	if err != nil {
		// Failures are logged by the client with the sync id.
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, SyncResult{
		Success:  true,
		Count:    snap.Len(),
		Snapshot: snap,
	})
}

// decodeOptional decodes a JSON body into v. An empty body leaves v
// untouched.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
