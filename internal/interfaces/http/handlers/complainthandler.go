package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"caretrack/internal/application/complaint/usecases"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

type ComplaintHandler struct {
	createUC  usecases.CreateComplaintExecutor
	assignUC  usecases.AssignComplaintExecutor
	replyUC   usecases.ReplyComplaintExecutor
	statusUC  usecases.UpdateStatusExecutor
	getUC     usecases.GetComplaintExecutor
	listUC    usecases.ListComplaintsExecutor
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewComplaintHandler(
	createUC usecases.CreateComplaintExecutor,
	assignUC usecases.AssignComplaintExecutor,
	replyUC usecases.ReplyComplaintExecutor,
	statusUC usecases.UpdateStatusExecutor,
	getUC usecases.GetComplaintExecutor,
	listUC usecases.ListComplaintsExecutor,
) *ComplaintHandler {
	return &ComplaintHandler{
		createUC: createUC,
		assignUC: assignUC,
		replyUC:  replyUC,
		statusUC: statusUC,
		getUC:    getUC,
		listUC:   listUC,
		// Complaint text is rendered in the staff UI; strip all markup.
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.NewLogger(),
	}
}

type CreateComplaintRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"required,max=5000"`
	Priority     string `json:"priority"`
	Source       string `json:"source"`
	DepartmentID uint   `json:"department_id"`
	PatientID    *uint  `json:"patient_id"`
}

// CreateComplaint handles POST /complaints
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create complaint request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateComplaintCommand{
		Actor:        actor,
		Title:        h.sanitizer.Sanitize(req.Title),
		Description:  h.sanitizer.Sanitize(req.Description),
		Priority:     req.Priority,
		Source:       req.Source,
		DepartmentID: req.DepartmentID,
		PatientID:    req.PatientID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result.Complaint, "Complaint created successfully")
}

// GetComplaint handles GET /complaints/:id
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	complaintID, err := utils.ParseIDParam(c, "id", "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetComplaintQuery{
		Actor:       actor,
		ComplaintID: complaintID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Complaint)
}

// GetComplaintByNumber handles GET /complaints/number/:number
func (h *ComplaintHandler) GetComplaintByNumber(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetComplaintQuery{
		Actor:  actor,
		Number: c.Param("number"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Complaint)
}

// ListComplaints handles GET /complaints
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	query, err := parseListComplaintsQuery(c, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      result.Complaints,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: utils.TotalPages(result.Total, result.PageSize),
	})
}

// ExportComplaints handles GET /complaints/export and streams the scoped
// list as CSV. The route is additionally gated by complaint.export.
func (h *ComplaintHandler) ExportComplaints(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	query, err := parseListComplaintsQuery(c, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	query.PageSize = 1000

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="complaints.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"number", "title", "status", "priority", "source", "department_id", "creator_id", "created_at", "closed_at"})
	for _, item := range result.Complaints {
		closedAt := ""
		if item.ClosedAt != nil {
			closedAt = item.ClosedAt.Format("2006-01-02 15:04:05")
		}
		_ = w.Write([]string{
			item.Number,
			item.Title,
			item.Status,
			item.Priority,
			item.Source,
			strconv.FormatUint(uint64(item.DepartmentID), 10),
			strconv.FormatUint(uint64(item.CreatorID), 10),
			item.CreatedAt.Format("2006-01-02 15:04:05"),
			closedAt,
		})
	}
	w.Flush()
}

type AssignComplaintRequest struct {
	AssigneeID uint   `json:"assignee_id" binding:"required"`
	Note       string `json:"note" binding:"max=1000"`
}

// AssignComplaint handles POST /complaints/:id/assign
func (h *ComplaintHandler) AssignComplaint(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	complaintID, err := utils.ParseIDParam(c, "id", "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignUC.Execute(c.Request.Context(), usecases.AssignComplaintCommand{
		Actor:       actor,
		ComplaintID: complaintID,
		AssigneeID:  req.AssigneeID,
		Note:        h.sanitizer.Sanitize(req.Note),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Complaint assigned", result.Complaint)
}

type ReplyComplaintRequest struct {
	Body       string `json:"body" binding:"required,max=5000"`
	IsInternal bool   `json:"is_internal"`
}

// ReplyComplaint handles POST /complaints/:id/replies
func (h *ComplaintHandler) ReplyComplaint(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	complaintID, err := utils.ParseIDParam(c, "id", "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReplyComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.replyUC.Execute(c.Request.Context(), usecases.ReplyComplaintCommand{
		Actor:       actor,
		ComplaintID: complaintID,
		Body:        h.sanitizer.Sanitize(req.Body),
		IsInternal:  req.IsInternal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"reply": result.Reply, "status": result.Status}, "Reply added")
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /complaints/:id/status
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	complaintID, err := utils.ParseIDParam(c, "id", "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.statusUC.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		Actor:       actor,
		ComplaintID: complaintID,
		Status:      req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated", result.Complaint)
}

func parseListComplaintsQuery(c *gin.Context, actor authorization.Actor) (usecases.ListComplaintsQuery, error) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListComplaintsQuery{
		Actor:     actor,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Source:    c.Query("source"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if v := c.Query("department_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return query, errors.NewValidationError("invalid department_id: " + v)
		}
		deptID := uint(id)
		query.DepartmentID = &deptID
	}
	if v := c.Query("creator_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return query, errors.NewValidationError("invalid creator_id: " + v)
		}
		creatorID := uint(id)
		query.CreatorID = &creatorID
	}
	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return query, errors.NewValidationError("invalid assignee_id: " + v)
		}
		assigneeID := uint(id)
		query.AssigneeID = &assigneeID
	}

	return query, nil
}
