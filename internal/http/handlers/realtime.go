package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/realtime"
	"github.com/campushare/campushare-backend/internal/requestdata"
	"github.com/campushare/campushare-backend/internal/services"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		Log: log.With("handler", "RealtimeHandler"),
		Hub: hub,
	}
}

// GET /api/events/stream
// Streams the viewer's institution channel until the client disconnects.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	client := h.Hub.NewSSEClient(rd.UserID)
	h.Hub.AddChannel(client, services.InstitutionChannel(rd.InstitutionID))

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	h.Hub.CloseClient(client)
}
