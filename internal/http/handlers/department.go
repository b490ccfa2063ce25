package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/http/response"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/services"
)

type DepartmentHandler struct {
	log         *logger.Logger
	departments services.DepartmentService
}

func NewDepartmentHandler(log *logger.Logger, departments services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		log:         log.With("handler", "DepartmentHandler"),
		departments: departments,
	}
}

// GET /api/institutions/:id/departments/candidates
func (h *DepartmentHandler) ListCandidates(c *gin.Context) {
	institutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid institution id"))
		return
	}

	candidates, err := h.departments.ListCandidates(c.Request.Context(), institutionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"candidates": candidates})
}

// POST /api/institutions/:id/departments/resolve
func (h *DepartmentHandler) ResolveSelection(c *gin.Context) {
	institutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid institution id"))
		return
	}

	var sel services.DepartmentSelection
	if err := c.ShouldBindJSON(&sel); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}

	dept, err := h.departments.ResolveSelection(c.Request.Context(), institutionID, sel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"department": dept})
}
