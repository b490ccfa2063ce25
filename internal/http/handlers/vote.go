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

type VoteHandler struct {
	log   *logger.Logger
	votes services.VoteService
}

func NewVoteHandler(log *logger.Logger, votes services.VoteService) *VoteHandler {
	return &VoteHandler{
		log:   log.With("handler", "VoteHandler"),
		votes: votes,
	}
}

// POST /api/resources/:id/vote
func (h *VoteHandler) ToggleResourceVote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.Error(c, apierr.Validationf("viewer profile missing"))
		return
	}
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid resource id"))
		return
	}

	result, err := h.votes.ToggleResourceVote(c.Request.Context(), rd.UserID, resourceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// POST /api/comments/:id/vote
func (h *VoteHandler) ToggleCommentVote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.Error(c, apierr.Validationf("viewer profile missing"))
		return
	}
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid comment id"))
		return
	}

	result, err := h.votes.ToggleCommentVote(c.Request.Context(), rd.UserID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
