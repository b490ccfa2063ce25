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

type CommentHandler struct {
	log       *logger.Logger
	directory services.DirectoryService
}

func NewCommentHandler(log *logger.Logger, directory services.DirectoryService) *CommentHandler {
	return &CommentHandler{
		log:       log.With("handler", "CommentHandler"),
		directory: directory,
	}
}

// GET /api/resources/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid resource id"))
		return
	}

	comments, err := h.directory.ListComments(c.Request.Context(), resourceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"comments": comments})
}

// POST /api/resources/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
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
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}

	comment, err := h.directory.AddComment(c.Request.Context(), resourceID, rd.UserID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"comment": comment})
}
