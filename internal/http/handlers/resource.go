package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/http/response"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/requestdata"
	"github.com/campushare/campushare-backend/internal/services"
)

type ResourceHandler struct {
	log       *logger.Logger
	directory services.DirectoryService
	ranker    services.AffinityRanker
}

func NewResourceHandler(log *logger.Logger, directory services.DirectoryService) *ResourceHandler {
	return &ResourceHandler{
		log:       log.With("handler", "ResourceHandler"),
		directory: directory,
	}
}

// GET /api/resources
// Directory listing scoped to the viewer's institution, re-ranked by viewer
// affinity after the store sort.
func (h *ResourceHandler) Query(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.Error(c, apierr.Validationf("viewer profile missing"))
		return
	}

	q := services.DirectoryQuery{
		InstitutionID: rd.InstitutionID,
		Sort:          c.Query("sort"),
	}
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apierr.Validationf("invalid department id"))
			return
		}
		q.DepartmentID = &id
	}
	if raw := c.Query("level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apierr.Validationf("invalid level"))
			return
		}
		q.Level = &level
	}
	if raw := c.Query("session"); raw != "" {
		q.Session = &raw
	}
	if raw := c.Query("type"); raw != "" {
		q.Type = &raw
	}

	resources, err := h.directory.Query(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"resources": h.ranker.Rank(resources, rd)})
}

type createResourceRequest struct {
	Department  services.DepartmentSelection `json:"department"`
	CourseCode  string                       `json:"course_code"`
	CourseTitle string                       `json:"course_title"`
	Title       string                       `json:"title"`
	Type        string                       `json:"type"`
	Level       int                          `json:"level"`
	Session     string                       `json:"session"`
	FileURL     string                       `json:"file_url"`
}

// POST /api/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.Error(c, apierr.Validationf("viewer profile missing"))
		return
	}

	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}

	resource, err := h.directory.CreateResource(c.Request.Context(), services.CreateResourceInput{
		InstitutionID: rd.InstitutionID,
		UploaderID:    rd.UserID,
		Department:    req.Department,
		CourseCode:    req.CourseCode,
		CourseTitle:   req.CourseTitle,
		Title:         req.Title,
		Type:          req.Type,
		Level:         req.Level,
		Session:       req.Session,
		FileURL:       req.FileURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"resource": resource})
}

// GET /api/resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid resource id"))
		return
	}
	resource, err := h.directory.GetResource(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"resource": resource})
}

// PATCH /api/resources/:id/type
func (h *ResourceHandler) UpdateType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid resource id"))
		return
	}
	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}
	if err := h.directory.UpdateType(c.Request.Context(), id, req.Type); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "updated"})
}

// POST /api/resources/:id/verify
func (h *ResourceHandler) SetVerified(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid resource id"))
		return
	}
	var req struct {
		Verified bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validationf("invalid request body"))
		return
	}
	if err := h.directory.SetVerified(c.Request.Context(), id, req.Verified); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "updated"})
}

// DELETE /api/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apierr.Validationf("invalid resource id"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.directory.DeleteResource(c.Request.Context(), id, rd); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "deleted"})
}
