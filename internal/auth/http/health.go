package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// pingTimeout bounds the store check so a hung database fails readiness
// instead of hanging the probe.
const pingTimeout = 2 * time.Second

type HealthHandler struct {
	StartTime time.Time
	Version   string
	Store     store.Store
}

func (h *HealthHandler) response(status string, checks *authsdk.HealthChecks) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.StartTime).Truncate(time.Second).String(),
		Version: h.Version,
		Checks:  checks,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving, with uptime and version
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, h.response("ok", nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the backing store; 503 with status "degraded" when it is unreachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"store check failed"
//	@Router			/readyz [get].
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		slogx.FromContext(r.Context()).Warn("store ping failed", "err", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, h.response("degraded", &authsdk.HealthChecks{Store: "error"}))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.response("ok", &authsdk.HealthChecks{Store: "ok"}))
}
