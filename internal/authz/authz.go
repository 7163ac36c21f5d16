package authz

import "context"

const (
	RoleParent   = "parent"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

const (
	ResourceChild        = "child"
	ResourceClassroom    = "classroom"
	ResourceAttendance   = "attendance"
	ResourceActivity     = "activity"
	ResourceMedicalAlert = "medical_alert"
	ResourcePayment      = "payment"
	ResourceUser         = "user"
	ResourceNotification = "notification"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionPay    = "pay"
)

// Principal is the authenticated actor issuing a request.
type Principal struct {
	ID   string
	Role string
}

// ScopeFilter narrows list queries to what the principal may see. A nil
// *ScopeFilter means no narrowing; MatchNone means the principal has no
// scope at all and every query must resolve to nothing.
type ScopeFilter struct {
	ParentID    string
	ClassroomID string
	MatchNone   bool
}

// DeniesAll reports whether the filter excludes every row.
func (f *ScopeFilter) DeniesAll() bool {
	return f != nil && f.MatchNone
}

// Decision is the outcome of an allow evaluation. Denials are returned as
// errors, never as a Decision.
type Decision struct {
	Allowed bool
	Filter  *ScopeFilter
}

// ResourceRef carries the ownership facts of the resource being accessed.
// Callers either resolve the facts themselves or set ChildID/ClassroomID and
// let the evaluator look them up through the directories.
type ResourceRef struct {
	ChildID       string
	ClassroomID   string
	OwnerParentID string
}

type ChildRef struct {
	ID          string
	ParentID    string
	ClassroomID string
}

type ClassroomRef struct {
	ID              string
	AssignedTeacher string
	ChildIDs        []string
}

// ChildDirectory and ClassroomDirectory are the collaborator lookups the
// evaluator needs to resolve ownership. Both are read-only.
type ChildDirectory interface {
	FindChildRef(ctx context.Context, id string) (*ChildRef, error)
}

type ClassroomDirectory interface {
	FindClassroomRef(ctx context.Context, id string) (*ClassroomRef, error)
	FindByAssignedTeacher(ctx context.Context, employeeID string) (*ClassroomRef, error)
}
