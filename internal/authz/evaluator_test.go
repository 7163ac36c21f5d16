package authz

import (
	"context"
	"errors"
	"testing"

	"go-daycare/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeChildDirectory struct {
	findChildRefFn func(ctx context.Context, id string) (*ChildRef, error)
}

func (f *fakeChildDirectory) FindChildRef(ctx context.Context, id string) (*ChildRef, error) {
	return f.findChildRefFn(ctx, id)
}

type fakeClassroomDirectory struct {
	findClassroomRefFn    func(ctx context.Context, id string) (*ClassroomRef, error)
	findByAssignedTeacher func(ctx context.Context, employeeID string) (*ClassroomRef, error)
}

func (f *fakeClassroomDirectory) FindClassroomRef(ctx context.Context, id string) (*ClassroomRef, error) {
	return f.findClassroomRefFn(ctx, id)
}
func (f *fakeClassroomDirectory) FindByAssignedTeacher(ctx context.Context, employeeID string) (*ClassroomRef, error) {
	return f.findByAssignedTeacher(ctx, employeeID)
}

func newTestEvaluator(t *testing.T, children ChildDirectory, classrooms ClassroomDirectory) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(children, classrooms)
	assert.NoError(t, err)
	return ev
}

func appCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func TestEvaluate_MissingPrincipal(t *testing.T) {
	ev := newTestEvaluator(t, &fakeChildDirectory{}, &fakeClassroomDirectory{})

	_, err := ev.Evaluate(context.Background(), Principal{}, ResourceChild, ActionRead, nil)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeUnauthorized, appCode(err))
}

func TestEvaluate_UnknownRole(t *testing.T) {
	ev := newTestEvaluator(t, &fakeChildDirectory{}, &fakeClassroomDirectory{})

	_, err := ev.Evaluate(context.Background(), Principal{ID: uuid.New().String(), Role: "janitor"}, ResourceChild, ActionRead, nil)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, appCode(err))
	assert.Contains(t, err.Error(), "admin")
}

func TestEvaluate_AdminBypassesOwnership(t *testing.T) {
	// No directory call should ever be made for an admin.
	children := &fakeChildDirectory{findChildRefFn: func(ctx context.Context, id string) (*ChildRef, error) {
		t.Fatal("admin evaluation must not hit the child directory")
		return nil, nil
	}}
	ev := newTestEvaluator(t, children, &fakeClassroomDirectory{})

	decision, err := ev.Evaluate(context.Background(), Principal{ID: uuid.New().String(), Role: RoleAdmin},
		ResourceUser, ActionDelete, &ResourceRef{ChildID: uuid.New().String()})
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Nil(t, decision.Filter)
}

func TestEvaluate_ParentChildOwnership(t *testing.T) {
	parentID := uuid.New().String()
	childID := uuid.New().String()

	children := &fakeChildDirectory{findChildRefFn: func(ctx context.Context, id string) (*ChildRef, error) {
		assert.Equal(t, childID, id)
		return &ChildRef{ID: id, ParentID: parentID}, nil
	}}
	ev := newTestEvaluator(t, children, &fakeClassroomDirectory{})

	t.Run("own child allowed", func(t *testing.T) {
		decision, err := ev.Evaluate(context.Background(), Principal{ID: parentID, Role: RoleParent},
			ResourceChild, ActionRead, &ResourceRef{ChildID: childID})
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("other parent's child denied", func(t *testing.T) {
		_, err := ev.Evaluate(context.Background(), Principal{ID: uuid.New().String(), Role: RoleParent},
			ResourceChild, ActionRead, &ResourceRef{ChildID: childID})
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeForbidden, appCode(err))
	})
}

func TestEvaluate_ParentDeniedClassroomAndUserManagement(t *testing.T) {
	ev := newTestEvaluator(t, &fakeChildDirectory{}, &fakeClassroomDirectory{})
	p := Principal{ID: uuid.New().String(), Role: RoleParent}

	_, err := ev.Evaluate(context.Background(), p, ResourceClassroom, ActionRead, nil)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, appCode(err))

	_, err = ev.Evaluate(context.Background(), p, ResourceUser, ActionCreate, nil)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, appCode(err))
}

func TestEvaluate_ParentPaymentOwnership(t *testing.T) {
	parentID := uuid.New().String()
	ev := newTestEvaluator(t, &fakeChildDirectory{}, &fakeClassroomDirectory{})

	decision, err := ev.Evaluate(context.Background(), Principal{ID: parentID, Role: RoleParent},
		ResourcePayment, ActionPay, &ResourceRef{OwnerParentID: parentID})
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)

	_, err = ev.Evaluate(context.Background(), Principal{ID: parentID, Role: RoleParent},
		ResourcePayment, ActionPay, &ResourceRef{OwnerParentID: uuid.New().String()})
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, appCode(err))
}

func TestEvaluate_EmployeeRosterMembership(t *testing.T) {
	teacherID := uuid.New().String()
	classroomID := uuid.New().String()
	memberChildID := uuid.New().String()
	outsiderChildID := uuid.New().String()

	children := &fakeChildDirectory{findChildRefFn: func(ctx context.Context, id string) (*ChildRef, error) {
		if id == memberChildID {
			return &ChildRef{ID: id, ParentID: uuid.New().String(), ClassroomID: classroomID}, nil
		}
		return &ChildRef{ID: id, ParentID: uuid.New().String(), ClassroomID: uuid.New().String()}, nil
	}}
	classrooms := &fakeClassroomDirectory{
		findByAssignedTeacher: func(ctx context.Context, employeeID string) (*ClassroomRef, error) {
			assert.Equal(t, teacherID, employeeID)
			return &ClassroomRef{ID: classroomID, AssignedTeacher: teacherID, ChildIDs: []string{memberChildID}}, nil
		},
	}
	ev := newTestEvaluator(t, children, classrooms)
	p := Principal{ID: teacherID, Role: RoleEmployee}

	t.Run("roster member allowed", func(t *testing.T) {
		decision, err := ev.Evaluate(context.Background(), p, ResourceChild, ActionRead, &ResourceRef{ChildID: memberChildID})
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("outside roster denied", func(t *testing.T) {
		_, err := ev.Evaluate(context.Background(), p, ResourceChild, ActionRead, &ResourceRef{ChildID: outsiderChildID})
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeForbidden, appCode(err))
	})
}

func TestEvaluate_EmployeeClassroomAssignment(t *testing.T) {
	teacherID := uuid.New().String()
	classroomID := uuid.New().String()

	classrooms := &fakeClassroomDirectory{
		findClassroomRefFn: func(ctx context.Context, id string) (*ClassroomRef, error) {
			return &ClassroomRef{ID: id, AssignedTeacher: teacherID}, nil
		},
	}
	ev := newTestEvaluator(t, &fakeChildDirectory{}, classrooms)

	decision, err := ev.Evaluate(context.Background(), Principal{ID: teacherID, Role: RoleEmployee},
		ResourceClassroom, ActionUpdate, &ResourceRef{ClassroomID: classroomID})
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)

	_, err = ev.Evaluate(context.Background(), Principal{ID: uuid.New().String(), Role: RoleEmployee},
		ResourceClassroom, ActionUpdate, &ResourceRef{ClassroomID: classroomID})
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, appCode(err))
}

func TestEvaluate_EmployeeDeniedPaymentManagement(t *testing.T) {
	ev := newTestEvaluator(t, &fakeChildDirectory{}, &fakeClassroomDirectory{})

	// Ownership never matters for an employee on payments.
	_, err := ev.Evaluate(context.Background(), Principal{ID: uuid.New().String(), Role: RoleEmployee},
		ResourcePayment, ActionRead, nil)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, appCode(err))
}

func TestEvaluateList_ScopeFilters(t *testing.T) {
	teacherID := uuid.New().String()
	classroomID := uuid.New().String()

	classrooms := &fakeClassroomDirectory{
		findByAssignedTeacher: func(ctx context.Context, employeeID string) (*ClassroomRef, error) {
			if employeeID == teacherID {
				return &ClassroomRef{ID: classroomID, AssignedTeacher: teacherID}, nil
			}
			return nil, nil
		},
	}
	ev := newTestEvaluator(t, &fakeChildDirectory{}, classrooms)

	t.Run("parent filters by ownership", func(t *testing.T) {
		parentID := uuid.New().String()
		decision, err := ev.EvaluateList(context.Background(), Principal{ID: parentID, Role: RoleParent}, ResourceChild)
		assert.NoError(t, err)
		assert.NotNil(t, decision.Filter)
		assert.Equal(t, parentID, decision.Filter.ParentID)
	})

	t.Run("employee filters by assigned classroom", func(t *testing.T) {
		decision, err := ev.EvaluateList(context.Background(), Principal{ID: teacherID, Role: RoleEmployee}, ResourceAttendance)
		assert.NoError(t, err)
		assert.NotNil(t, decision.Filter)
		assert.Equal(t, classroomID, decision.Filter.ClassroomID)
	})

	t.Run("employee without classroom gets a match-nothing filter", func(t *testing.T) {
		decision, err := ev.EvaluateList(context.Background(), Principal{ID: uuid.New().String(), Role: RoleEmployee}, ResourceChild)
		assert.NoError(t, err)
		if assert.NotNil(t, decision.Filter) {
			assert.True(t, decision.Filter.MatchNone)
			assert.True(t, decision.Filter.DeniesAll())
			assert.Empty(t, decision.Filter.ClassroomID)
			assert.Empty(t, decision.Filter.ParentID)
		}
	})

	t.Run("assigned employee filter matches rows", func(t *testing.T) {
		decision, err := ev.EvaluateList(context.Background(), Principal{ID: teacherID, Role: RoleEmployee}, ResourceChild)
		assert.NoError(t, err)
		if assert.NotNil(t, decision.Filter) {
			assert.False(t, decision.Filter.DeniesAll())
		}
	})

	t.Run("admin gets no filter", func(t *testing.T) {
		decision, err := ev.EvaluateList(context.Background(), Principal{ID: uuid.New().String(), Role: RoleAdmin}, ResourcePayment)
		assert.NoError(t, err)
		assert.Nil(t, decision.Filter)
	})
}
