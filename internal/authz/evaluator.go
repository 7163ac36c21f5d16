package authz

import (
	"context"

	authzerrors "go-daycare/internal/authz/errors"

	"github.com/casbin/casbin/v2"
)

// Evaluator decides allow/deny per request. It holds no mutable state: the
// grant matrix is fixed at construction and every ownership fact is read
// through the directories on demand.
type Evaluator struct {
	enforcer   *casbin.Enforcer
	children   ChildDirectory
	classrooms ClassroomDirectory
}

func NewEvaluator(children ChildDirectory, classrooms ClassroomDirectory) (*Evaluator, error) {
	enforcer, err := NewEnforcer()
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		enforcer:   enforcer,
		children:   children,
		classrooms: classrooms,
	}, nil
}

// Evaluate gates a single-resource operation. A nil ref checks the grant
// matrix only; ownership is then the caller's responsibility. Absence of the
// referenced resource is never decided here: directory errors pass through
// untouched.
func (e *Evaluator) Evaluate(ctx context.Context, p Principal, resource, action string, ref *ResourceRef) (Decision, error) {
	if p.ID == "" || p.Role == "" {
		return Decision{}, authzerrors.ErrNoPrincipal
	}

	if p.Role == RoleAdmin {
		return Decision{Allowed: true}, nil
	}

	if p.Role != RoleParent && p.Role != RoleEmployee {
		return Decision{}, authzerrors.ForbiddenForRoles(rolesAllowed(resource, action))
	}

	allowed, err := e.enforcer.Enforce(p.Role, resource, action)
	if err != nil {
		return Decision{}, err
	}
	if !allowed {
		return Decision{}, authzerrors.ForbiddenForRoles(rolesAllowed(resource, action))
	}

	if ref == nil {
		return Decision{Allowed: true}, nil
	}

	switch resource {
	case ResourceChild, ResourceAttendance, ResourceActivity, ResourceMedicalAlert:
		return e.evaluateChildScoped(ctx, p, ref)
	case ResourceClassroom:
		return e.evaluateClassroom(ctx, p, ref)
	case ResourcePayment:
		if ref.OwnerParentID != p.ID {
			return Decision{}, authzerrors.ErrNotYourInvoice
		}
		return Decision{Allowed: true}, nil
	default:
		return Decision{Allowed: true}, nil
	}
}

// EvaluateList resolves the scope filter for list-style queries: parents see
// their own children and payments, employees their assigned classroom, admins
// everything.
func (e *Evaluator) EvaluateList(ctx context.Context, p Principal, resource string) (Decision, error) {
	if p.ID == "" || p.Role == "" {
		return Decision{}, authzerrors.ErrNoPrincipal
	}

	if p.Role == RoleAdmin {
		return Decision{Allowed: true}, nil
	}

	if p.Role != RoleParent && p.Role != RoleEmployee {
		return Decision{}, authzerrors.ForbiddenForRoles(rolesAllowed(resource, ActionRead))
	}

	allowed, err := e.enforcer.Enforce(p.Role, resource, ActionRead)
	if err != nil {
		return Decision{}, err
	}
	if !allowed {
		return Decision{}, authzerrors.ForbiddenForRoles(rolesAllowed(resource, ActionRead))
	}

	if p.Role == RoleParent {
		return Decision{Allowed: true, Filter: &ScopeFilter{ParentID: p.ID}}, nil
	}

	// Employee without an assigned classroom gets a match-nothing filter:
	// the query legally returns nothing rather than everything.
	cls, err := e.classrooms.FindByAssignedTeacher(ctx, p.ID)
	if err != nil {
		return Decision{}, err
	}
	if cls == nil {
		return Decision{Allowed: true, Filter: &ScopeFilter{MatchNone: true}}, nil
	}
	return Decision{Allowed: true, Filter: &ScopeFilter{ClassroomID: cls.ID}}, nil
}

func (e *Evaluator) evaluateChildScoped(ctx context.Context, p Principal, ref *ResourceRef) (Decision, error) {
	cref, err := e.resolveChildRef(ctx, ref)
	if err != nil {
		return Decision{}, err
	}

	if p.Role == RoleParent {
		if cref.ParentID != p.ID {
			return Decision{}, authzerrors.ErrNotYourChild
		}
		return Decision{Allowed: true}, nil
	}

	cls, err := e.classrooms.FindByAssignedTeacher(ctx, p.ID)
	if err != nil {
		return Decision{}, err
	}
	if cls == nil || !e.isRosterMember(cls, cref) {
		return Decision{}, authzerrors.ErrChildNotInClassroom
	}
	return Decision{Allowed: true}, nil
}

func (e *Evaluator) evaluateClassroom(ctx context.Context, p Principal, ref *ResourceRef) (Decision, error) {
	if p.Role == RoleParent {
		return Decision{}, authzerrors.ForbiddenForRoles(rolesAllowed(ResourceClassroom, ActionRead))
	}

	cls, err := e.classrooms.FindClassroomRef(ctx, ref.ClassroomID)
	if err != nil {
		return Decision{}, err
	}
	if cls == nil || cls.AssignedTeacher != p.ID {
		return Decision{}, authzerrors.ErrNotAssignedClassroom
	}
	return Decision{Allowed: true}, nil
}

func (e *Evaluator) resolveChildRef(ctx context.Context, ref *ResourceRef) (*ChildRef, error) {
	if ref.ChildID != "" && ref.OwnerParentID == "" {
		return e.children.FindChildRef(ctx, ref.ChildID)
	}
	return &ChildRef{
		ID:          ref.ChildID,
		ParentID:    ref.OwnerParentID,
		ClassroomID: ref.ClassroomID,
	}, nil
}

func (e *Evaluator) isRosterMember(cls *ClassroomRef, cref *ChildRef) bool {
	for _, id := range cls.ChildIDs {
		if id == cref.ID {
			return true
		}
	}
	return cref.ClassroomID != "" && cref.ClassroomID == cls.ID
}
