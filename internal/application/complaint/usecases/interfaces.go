package usecases

import (
	"context"

	"caretrack/internal/shared/authorization"
)

type CreateComplaintExecutor interface {
	Execute(ctx context.Context, cmd CreateComplaintCommand) (*CreateComplaintResult, error)
}

type AssignComplaintExecutor interface {
	Execute(ctx context.Context, cmd AssignComplaintCommand) (*AssignComplaintResult, error)
}

type ReplyComplaintExecutor interface {
	Execute(ctx context.Context, cmd ReplyComplaintCommand) (*ReplyComplaintResult, error)
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error)
}

type GetComplaintExecutor interface {
	Execute(ctx context.Context, query GetComplaintQuery) (*GetComplaintResult, error)
}

type ListComplaintsExecutor interface {
	Execute(ctx context.Context, query ListComplaintsQuery) (*ListComplaintsResult, error)
}

// PermissionResolver answers both hard gates and soft visibility checks.
type PermissionResolver interface {
	Resolve(ctx context.Context, actor authorization.Actor, code string) (bool, error)
	Require(ctx context.Context, actor authorization.Actor, code string) error
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error
}

// ReferenceChecker validates foreign keys the schema does not enforce.
type ReferenceChecker interface {
	DepartmentExists(ctx context.Context, departmentID uint) (bool, error)
	PatientExists(ctx context.Context, patientID uint) (bool, error)
}
