package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/http/response"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/requestdata"
	"github.com/campushare/campushare-backend/internal/services"
)

type LeaderboardHandler struct {
	log        *logger.Logger
	reputation services.ReputationService
}

func NewLeaderboardHandler(log *logger.Logger, reputation services.ReputationService) *LeaderboardHandler {
	return &LeaderboardHandler{
		log:        log.With("handler", "LeaderboardHandler"),
		reputation: reputation,
	}
}

// GET /api/institutions/:id/leaderboard
func (h *LeaderboardHandler) List(c *gin.Context) {
	institutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid institution id"))
		return
	}

	if c.Query("recompute") == "true" {
		scores, err := h.reputation.ComputeScores(c.Request.Context(), institutionID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"leaderboard": scores})
		return
	}

	scores, err := h.reputation.Leaderboard(c.Request.Context(), institutionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"leaderboard": scores})
}

// GET /api/institutions/:id/leaderboard/me
func (h *LeaderboardHandler) Me(c *gin.Context) {
	institutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid institution id"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.Error(c, apierr.Validationf("viewer profile missing"))
		return
	}

	rank, err := h.reputation.RankOf(c.Request.Context(), rd.UserID, institutionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"rank": rank})
}
