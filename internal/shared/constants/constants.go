package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"

	// Context keys
	ContextKeyUserID          = "user_id"
	ContextKeyUserRole        = "user_role"
	ContextKeyDepartmentID    = "department_id"
	ContextKeyActorUserID     = "actor_user_id"
	ContextKeyImpersonating   = "impersonating"
	ContextKeyRequestID       = "request_id"

	// Database table names
	TableUsers                = "users"
	TableDepartments          = "departments"
	TablePatients             = "patients"
	TablePermissions          = "permissions"
	TableRolePermissions      = "role_permissions"
	TableUserPermissions      = "user_permissions"
	TableComplaints           = "complaints"
	TableComplaintAssignments = "complaint_assignments"
	TableComplaintHistory     = "complaint_history"
	TableComplaintReplies     = "complaint_replies"
	TableActivityLog          = "activity_log"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)

// Permission codes. Permission checks always go through the resolver in
// internal/application/permission; handlers and use cases reference these
// constants instead of string literals.
const (
	PermComplaintCreate         = "complaint.create"
	PermComplaintAssign         = "complaint.assign"
	PermComplaintReply          = "complaint.reply"
	PermComplaintStatus         = "complaint.status"
	PermComplaintViewDepartment = "complaint.view_department"
	PermComplaintViewAll        = "complaint.view_all"
	PermComplaintExport         = "complaint.export"
	PermPermissionsManage       = "permissions.manage"
	PermUserPermissionsManage   = "user_permissions.manage"
	PermUsersManage             = "users.manage"
	PermActivityLogView         = "activity_log.view"
)

// Activity log action tags
const (
	ActionComplaintCreate     = "complaint.create"
	ActionComplaintAssign     = "complaint.assign"
	ActionComplaintReply      = "complaint.reply"
	ActionComplaintStatus     = "complaint.status_update"
	ActionPermissionsSetRole  = "permissions.set_role"
	ActionPermissionsSetUser  = "permissions.set_user"
	ActionImpersonationStart  = "impersonation.start"
	ActionImpersonationEnd    = "impersonation.end"
	ActionLogin               = "auth.login"
	ActionUserCreate          = "user.create"
	ActionUserUpdate          = "user.update"
)
