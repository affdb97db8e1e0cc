package controllers

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/app/services"
	"github.com/campusworks/transcript-tracker/internal/middleware"
)

// RequestController handles one request collection. Two instances are
// mounted, one for transcripts and one for recommendations; the handlers
// are identical apart from the collection they operate on.
type RequestController struct {
	workflow *services.WorkflowService
	kind     models.RequestKind
	logger   zerolog.Logger
}

// NewRequestController creates a controller bound to one request collection
func NewRequestController(workflow *services.WorkflowService, kind models.RequestKind, logger zerolog.Logger) *RequestController {
	return &RequestController{
		workflow: workflow,
		kind:     kind,
		logger:   logger,
	}
}

func requestID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request ID")
		errorDetail = errorDetail.WithDetails("Request ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func actorID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// Create submits a new request
// @Summary Submit a new request
// @Description Creates a new request in Pending status with its opening timeline entry
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Request details"
// @Success 201 {object} dto.APIResponse{data=models.Request} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only students can submit requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests [post]
func (c *RequestController) Create(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	var req dto.CreateRequestRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	created, err := c.workflow.Submit(ctx, userID, c.kind, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestId", created.ID).Str("kind", string(c.kind)).Msg("Request submitted")
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// List returns the requests visible to the caller
// @Summary List requests
// @Description Students see their own requests, staff see requests assigned to them, admins see all
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Request} "Requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests [get]
func (c *RequestController) List(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	requests, err := c.workflow.List(ctx, userID, c.kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      requests,
		Timestamp: time.Now(),
	})
}

// ListAll returns every request in the collection
// @Summary List all requests
// @Description Returns every request regardless of assignment; staff and admin only
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Request} "Requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests/all [get]
func (c *RequestController) ListAll(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	requests, err := c.workflow.ListAll(ctx, userID, c.kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      requests,
		Timestamp: time.Now(),
	})
}

// Get returns a single request
// @Summary Get a request
// @Description Returns a single request including its timeline and documents
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.Request} "Request"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not your request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /requests/{id} [get]
func (c *RequestController) Get(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	id, ok := requestID(ctx)
	if !ok {
		return
	}

	req, err := c.workflow.Get(ctx, userID, c.kind, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      req,
		Timestamp: time.Now(),
	})
}

// StudentEdit applies a student's edit to their own Pending request
// @Summary Edit own request
// @Description Updates request details; only allowed while the request is still Pending
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.StudentEditRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Request} "Updated request"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or request no longer editable"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not your request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /requests/{id}/edit [put]
func (c *RequestController) StudentEdit(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	id, ok := requestID(ctx)
	if !ok {
		return
	}
	var req dto.StudentEditRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	updated, err := c.workflow.StudentEdit(ctx, userID, c.kind, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// StaffUpdate applies the office's patch to a request
// @Summary Process a request
// @Description Applies status changes, staff assignment, rejection and staff notes in a fixed order
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.StaffUpdateRequest true "Fields to apply"
// @Success 200 {object} dto.APIResponse{data=models.Request} "Updated request"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or transition"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /requests/{id} [patch]
func (c *RequestController) StaffUpdate(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	id, ok := requestID(ctx)
	if !ok {
		return
	}
	var req dto.StaffUpdateRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	updated, err := c.workflow.StaffUpdate(ctx, userID, c.kind, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// CoCurricular sets the co-curricular notes on a recommendation request
// @Summary Annotate co-curricular activities
// @Description Sets the co-curricular notes section of a recommendation request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.CoCurricularRequest true "Notes"
// @Success 200 {object} dto.APIResponse{data=models.Request} "Updated request"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /recommendations/{id}/co-curricular [put]
func (c *RequestController) CoCurricular(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	id, ok := requestID(ctx)
	if !ok {
		return
	}
	var req dto.CoCurricularRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	updated, err := c.workflow.AnnotateCoCurricular(ctx, userID, id, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// UploadDocument stores a file against a request
// @Summary Upload a document
// @Description Stores a file against the request and notifies the student
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.DocumentUploadResponse} "Document stored"
// @Failure 400 {object} dto.ErrorResponse "No file provided"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /requests/{id}/documents [post]
func (c *RequestController) UploadDocument(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	id, ok := requestID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No file provided")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	_, doc, err := c.workflow.UploadDocument(ctx, userID, c.kind, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestId", id).Str("filename", doc.Filename).Msg("Document uploaded")
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.DocumentUploadResponse{
			Message:  "Document uploaded",
			Document: *doc,
		},
		Timestamp: time.Now(),
	})
}

// GetDocument returns a stored document as base64 content
// @Summary Download a document
// @Description Returns a document's metadata and base64-encoded content
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param docId path string true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentContentResponse} "Document content"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not your request"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /requests/{id}/documents/{docId} [get]
func (c *RequestController) GetDocument(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	id, ok := requestID(ctx)
	if !ok {
		return
	}

	doc, content, err := c.workflow.GetDocument(ctx, userID, c.kind, id, ctx.Param("docId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.DocumentContentResponse{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Content:     base64.StdEncoding.EncodeToString(content),
		},
		Timestamp: time.Now(),
	})
}
