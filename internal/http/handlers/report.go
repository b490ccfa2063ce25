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

type ReportHandler struct {
	log        *logger.Logger
	moderation services.ModerationService
}

func NewReportHandler(log *logger.Logger, moderation services.ModerationService) *ReportHandler {
	return &ReportHandler{
		log:        log.With("handler", "ReportHandler"),
		moderation: moderation,
	}
}

// POST /api/resources/:id/reports
func (h *ReportHandler) Submit(c *gin.Context) {
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
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}

	report, err := h.moderation.SubmitReport(c.Request.Context(), services.SubmitReportInput{
		ResourceID: resourceID,
		ReporterID: rd.UserID,
		Reason:     req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"report": report})
}

// GET /api/reports
func (h *ReportHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.Error(c, apierr.Validationf("viewer profile missing"))
		return
	}

	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	reports, err := h.moderation.ListReports(c.Request.Context(), rd.InstitutionID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"reports": reports})
}

// GET /api/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid report id"))
		return
	}
	report, err := h.moderation.GetReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"report": report})
}

// POST /api/reports/:id/resolve
func (h *ReportHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid report id"))
		return
	}
	var req struct {
		Outcome string `json:"outcome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}

	report, err := h.moderation.Resolve(c.Request.Context(), id, req.Outcome)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"report": report})
}

// POST /api/reports/:id/resolve-and-delete
func (h *ReportHandler) ResolveAndDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid report id"))
		return
	}

	result, err := h.moderation.ResolveAndDelete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
