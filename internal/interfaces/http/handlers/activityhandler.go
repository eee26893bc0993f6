package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"caretrack/internal/application/activity"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

type ListActivityExecutor interface {
	Execute(ctx context.Context, query activity.ListActivityQuery) (*activity.ListActivityResult, error)
}

type ActivityHandler struct {
	listUC ListActivityExecutor
	logger logger.Interface
}

func NewActivityHandler(listUC ListActivityExecutor) *ActivityHandler {
	return &ActivityHandler{
		listUC: listUC,
		logger: logger.NewLogger(),
	}
}

// ListActivity handles GET /activity
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	pagination := utils.ParsePagination(c)
	query := activity.ListActivityQuery{
		Actor:      actor,
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	}
	if v := c.Query("actor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid actor_id: "+v)
			return
		}
		actorID := uint(id)
		query.ActorID = &actorID
	}
	if v := c.Query("effective_user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid effective_user_id: "+v)
			return
		}
		effectiveUserID := uint(id)
		query.EffectiveUserID = &effectiveUserID
	}
	if v := c.Query("entity_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid entity_id: "+v)
			return
		}
		entityID := uint(id)
		query.EntityID = &entityID
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "from must be an RFC 3339 timestamp")
			return
		}
		query.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "to must be an RFC 3339 timestamp")
			return
		}
		query.To = &to
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      result.Entries,
		Total:      result.Total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(result.Total, pagination.PageSize),
	})
}
