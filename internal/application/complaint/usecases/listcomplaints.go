package usecases

import (
	"context"

	"caretrack/internal/application/complaint/dto"
	"caretrack/internal/domain/complaint"
	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type ListComplaintsQuery struct {
	Actor        authorization.Actor
	Status       string
	Priority     string
	Source       string
	DepartmentID *uint
	CreatorID    *uint
	AssigneeID   *uint
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListComplaintsResult struct {
	Complaints []dto.ComplaintListItemDTO
	Total      int64
	Page       int
	PageSize   int
}

// ListComplaintsUseCase lists complaints inside the caller's visibility
// scope. Filters narrow the scoped set; they can never widen it.
type ListComplaintsUseCase struct {
	complaints  complaint.ComplaintRepository
	permissions PermissionResolver
	logger      logger.Interface
}

func NewListComplaintsUseCase(complaints complaint.ComplaintRepository, permissions PermissionResolver, log logger.Interface) *ListComplaintsUseCase {
	return &ListComplaintsUseCase{
		complaints:  complaints,
		permissions: permissions,
		logger:      log,
	}
}

func (uc *ListComplaintsUseCase) Execute(ctx context.Context, query ListComplaintsQuery) (*ListComplaintsResult, error) {
	scope, err := resolveScope(ctx, uc.permissions, query.Actor)
	if err != nil {
		return nil, err
	}

	filter := complaint.ComplaintFilter{
		DepartmentID: query.DepartmentID,
		CreatorID:    query.CreatorID,
		AssigneeID:   query.AssigneeID,
		Search:       query.Search,
		Page:         query.Page,
		PageSize:     query.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewComplaintStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}
	if query.Source != "" {
		source, err := vo.NewSource(query.Source)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Source = &source
	}

	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	complaints, total, err := uc.complaints.List(ctx, scope, filter)
	if err != nil {
		uc.logger.Errorw("failed to list complaints", "error", err)
		return nil, err
	}

	items := make([]dto.ComplaintListItemDTO, len(complaints))
	for i, c := range complaints {
		items[i] = dto.ToComplaintListItemDTO(c)
	}

	return &ListComplaintsResult{
		Complaints: items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}
