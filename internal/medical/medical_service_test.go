package medical_test

import (
	"context"
	"testing"

	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"
	"go-daycare/internal/medical"
	medicalerrors "go-daycare/internal/medical/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAlertRepository struct {
	createFn      func(ctx context.Context, m *medical.MedicalAlert) error
	findAllFn     func(ctx context.Context, filter *authz.ScopeFilter) ([]medical.MedicalAlert, error)
	findByChildFn func(ctx context.Context, childID string) ([]medical.MedicalAlert, error)
	findByIDFn    func(ctx context.Context, id string) (*medical.MedicalAlert, error)
	updateFn      func(ctx context.Context, m *medical.MedicalAlert) error
}

func (f *fakeAlertRepository) Create(ctx context.Context, m *medical.MedicalAlert) error {
	if f.createFn != nil {
		return f.createFn(ctx, m)
	}
	return nil
}

func (f *fakeAlertRepository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]medical.MedicalAlert, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeAlertRepository) FindByChild(ctx context.Context, childID string) ([]medical.MedicalAlert, error) {
	if f.findByChildFn != nil {
		return f.findByChildFn(ctx, childID)
	}
	return nil, nil
}

func (f *fakeAlertRepository) FindByID(ctx context.Context, id string) (*medical.MedicalAlert, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAlertRepository) Update(ctx context.Context, m *medical.MedicalAlert) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, m)
	}
	return nil
}

type fakeAccessPolicy struct {
	evaluateFn func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error)
}

func (f *fakeAccessPolicy) Evaluate(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
	if f.evaluateFn != nil {
		return f.evaluateFn(ctx, p, resource, action, ref)
	}
	return authz.Decision{Allowed: true}, nil
}

func TestMedicalService_Create(t *testing.T) {
	ctx := context.Background()
	childID := uuid.New().String()
	actor := authz.Principal{ID: uuid.New().String(), Role: authz.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		repo := &fakeAlertRepository{}
		svc := medical.NewService(repo, &fakeAccessPolicy{}, zap.NewNop())

		var created *medical.MedicalAlert
		repo.createFn = func(ctx context.Context, m *medical.MedicalAlert) error {
			created = m
			return nil
		}

		resp, err := svc.Create(ctx, actor, medical.CreateAlertRequest{
			ChildID:   childID,
			AlertType: medical.TypeAllergy,
			Title:     "Peanut allergy",
			Severity:  medical.SeverityCritical,
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsActive)
		if assert.NotNil(t, created) {
			assert.Equal(t, childID, created.ChildID.String())
			assert.Equal(t, actor.ID, created.CreatedBy.String())
		}
	})

	t.Run("child outside the actor's classroom", func(t *testing.T) {
		repo := &fakeAlertRepository{}
		policy := &fakeAccessPolicy{
			evaluateFn: func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
				assert.Equal(t, authz.ResourceMedicalAlert, resource)
				assert.Equal(t, authz.ActionCreate, action)
				if assert.NotNil(t, ref) {
					assert.Equal(t, childID, ref.ChildID)
				}
				return authz.Decision{}, authzerrors.ErrChildNotInClassroom
			},
		}
		repo.createFn = func(ctx context.Context, m *medical.MedicalAlert) error {
			t.Fatal("denied create must not reach the repository")
			return nil
		}
		svc := medical.NewService(repo, policy, zap.NewNop())

		_, err := svc.Create(ctx, actor, medical.CreateAlertRequest{
			ChildID:   childID,
			AlertType: medical.TypeMedication,
			Title:     "Inhaler",
			Severity:  medical.SeverityHigh,
		})

		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
	})

	t.Run("unknown severity", func(t *testing.T) {
		svc := medical.NewService(&fakeAlertRepository{}, &fakeAccessPolicy{}, zap.NewNop())

		_, err := svc.Create(ctx, actor, medical.CreateAlertRequest{
			ChildID:   childID,
			AlertType: medical.TypeCondition,
			Title:     "Asthma",
			Severity:  "urgent",
		})

		assert.ErrorIs(t, err, medicalerrors.ErrInvalidSeverity)
	})
}

func TestMedicalService_Update(t *testing.T) {
	ctx := context.Background()
	actor := authz.Principal{ID: uuid.New().String(), Role: authz.RoleEmployee}
	alertID := uuid.New()
	childID := uuid.New()

	t.Run("deactivates an alert", func(t *testing.T) {
		repo := &fakeAlertRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*medical.MedicalAlert, error) {
			return &medical.MedicalAlert{
				ID:        alertID,
				ChildID:   childID,
				AlertType: medical.TypeAllergy,
				Severity:  medical.SeverityLow,
				IsActive:  true,
			}, nil
		}
		svc := medical.NewService(repo, &fakeAccessPolicy{}, zap.NewNop())

		inactive := false
		resp, err := svc.Update(ctx, actor, alertID.String(), medical.UpdateAlertRequest{
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("ownership is checked against the alert's child", func(t *testing.T) {
		repo := &fakeAlertRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*medical.MedicalAlert, error) {
			return &medical.MedicalAlert{ID: alertID, ChildID: childID, IsActive: true}, nil
		}
		repo.updateFn = func(ctx context.Context, m *medical.MedicalAlert) error {
			t.Fatal("denied update must not reach the repository")
			return nil
		}
		policy := &fakeAccessPolicy{
			evaluateFn: func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
				assert.Equal(t, authz.ActionUpdate, action)
				if assert.NotNil(t, ref) {
					assert.Equal(t, childID.String(), ref.ChildID)
				}
				return authz.Decision{}, authzerrors.ErrChildNotInClassroom
			},
		}
		svc := medical.NewService(repo, policy, zap.NewNop())

		inactive := false
		_, err := svc.Update(ctx, actor, alertID.String(), medical.UpdateAlertRequest{
			IsActive: &inactive,
		})

		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
	})
}
