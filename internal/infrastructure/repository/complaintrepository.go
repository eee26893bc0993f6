package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"caretrack/internal/domain/complaint"
	"caretrack/internal/infrastructure/persistence/mappers"
	"caretrack/internal/infrastructure/persistence/models"
	"caretrack/internal/shared/constants"
	db "caretrack/internal/shared/db"
	sharederrors "caretrack/internal/shared/errors"
)

// allowedComplaintOrderByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks.
var allowedComplaintOrderByFields = map[string]bool{
	"id":            true,
	"number":        true,
	"title":         true,
	"status":        true,
	"priority":      true,
	"source":        true,
	"department_id": true,
	"creator_id":    true,
	"created_at":    true,
	"updated_at":    true,
}

type ComplaintRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewComplaintRepository(gormDB *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{
		db:     gormDB,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *ComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if sharederrors.IsDuplicateError(err) {
			return sharederrors.NewConflictError("complaint number already exists")
		}
		return fmt.Errorf("failed to save complaint: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

// Update persists the aggregate guarded by its previous version. A zero
// rows-affected result means another writer won the race.
func (r *ComplaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ComplaintModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return sharederrors.NewConflictError("complaint was modified concurrently")
	}

	return nil
}

func (r *ComplaintRepository) GetByID(ctx context.Context, complaintID uint) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, complaintID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sharederrors.NewNotFoundError("complaint not found")
		}
		return nil, fmt.Errorf("failed to find complaint: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ComplaintRepository) GetByNumber(ctx context.Context, number string) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sharederrors.NewNotFoundError("complaint not found")
		}
		return nil, fmt.Errorf("failed to find complaint: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ComplaintRepository) List(
	ctx context.Context,
	scope complaint.AccessScope,
	filter complaint.ComplaintFilter,
) ([]*complaint.Complaint, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyScope(tx.Model(&models.ComplaintModel{}), scope)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Source != nil {
		query = query.Where("source = ?", filter.Source.String())
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("id IN (?)", currentAssignmentSubquery(tx, *filter.AssigneeID))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR number LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedComplaintOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC, id DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var complaintModels []models.ComplaintModel
	if err := query.Find(&complaintModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}

	complaints := make([]*complaint.Complaint, len(complaintModels))
	for i, model := range complaintModels {
		c, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		complaints[i] = c
	}

	return complaints, total, nil
}

// applyScope narrows the query to what the acting user may see. Employees
// see complaints they created or currently hold through the latest
// assignment.
func (r *ComplaintRepository) applyScope(query *gorm.DB, scope complaint.AccessScope) *gorm.DB {
	switch {
	case scope.Unrestricted:
		return query
	case scope.DepartmentID != nil:
		return query.Where("department_id = ?", *scope.DepartmentID)
	case scope.UserID != nil:
		return query.Where(
			"creator_id = ? OR id IN (?)",
			*scope.UserID,
			currentAssignmentSubquery(r.db, *scope.UserID),
		)
	default:
		// Fail closed: an empty scope matches nothing.
		return query.Where("1 = 0")
	}
}

// currentAssignmentSubquery selects complaint IDs whose latest assignment
// points at the given assignee.
func currentAssignmentSubquery(tx *gorm.DB, assigneeID uint) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.ComplaintAssignmentModel{}).
		Select("complaint_id").
		Where("assignee_id = ?", assigneeID).
		Where(fmt.Sprintf(
			"id = (SELECT MAX(id) FROM %s ca WHERE ca.complaint_id = %s.complaint_id)",
			constants.TableComplaintAssignments,
			constants.TableComplaintAssignments,
		))
}
