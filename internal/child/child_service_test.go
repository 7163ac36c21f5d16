package child_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"
	"go-daycare/internal/child"
	childerrors "go-daycare/internal/child/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeChildRepository struct {
	withTxFn     func(tx *sql.Tx) child.Repository
	createFn     func(ctx context.Context, c *child.Child) error
	findAllFn    func(ctx context.Context, filter *authz.ScopeFilter) ([]child.Child, error)
	findByIDFn   func(ctx context.Context, id string) (*child.Child, error)
	findActiveFn func(ctx context.Context) ([]child.Child, error)
	updateFn     func(ctx context.Context, c *child.Child) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeChildRepository) WithTx(tx *sql.Tx) child.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeChildRepository) Create(ctx context.Context, c *child.Child) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeChildRepository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]child.Child, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeChildRepository) FindByID(ctx context.Context, id string) (*child.Child, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChildRepository) FindActive(ctx context.Context) ([]child.Child, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeChildRepository) Update(ctx context.Context, c *child.Child) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeChildRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestChildService_Create(t *testing.T) {
	ctx := context.Background()
	parentID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakeChildRepository{}
		svc := child.NewService(repo, zap.NewNop())

		resp, err := svc.Create(ctx, child.CreateChildRequest{
			ParentID:    parentID,
			FirstName:   "Mia",
			LastName:    "Larsen",
			DateOfBirth: "2022-06-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, parentID, resp.ParentID)
		assert.True(t, resp.IsActive)
	})

	t.Run("bad date of birth", func(t *testing.T) {
		repo := &fakeChildRepository{}
		svc := child.NewService(repo, zap.NewNop())

		_, err := svc.Create(ctx, child.CreateChildRequest{
			ParentID:    parentID,
			FirstName:   "Mia",
			LastName:    "Larsen",
			DateOfBirth: "15.06.2022",
		})

		assert.ErrorIs(t, err, childerrors.ErrInvalidDateFormat)
	})
}

func TestChildService_GetByID_Scoping(t *testing.T) {
	ctx := context.Background()
	parentID := uuid.New()
	classroomID := uuid.New()
	childID := uuid.New()

	repo := &fakeChildRepository{
		findByIDFn: func(ctx context.Context, id string) (*child.Child, error) {
			return &child.Child{
				ID:          childID,
				ParentID:    parentID,
				ClassroomID: &classroomID,
				FirstName:   "Mia",
				DateOfBirth: time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
				IsActive:    true,
			}, nil
		},
	}
	svc := child.NewService(repo, zap.NewNop())

	t.Run("own parent", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, childID.String(), &authz.ScopeFilter{ParentID: parentID.String()})
		assert.NoError(t, err)
		assert.Equal(t, childID.String(), resp.ID)
	})

	t.Run("other parent", func(t *testing.T) {
		_, err := svc.GetByID(ctx, childID.String(), &authz.ScopeFilter{ParentID: uuid.New().String()})
		assert.ErrorIs(t, err, authzerrors.ErrNotYourChild)
	})

	t.Run("assigned classroom", func(t *testing.T) {
		_, err := svc.GetByID(ctx, childID.String(), &authz.ScopeFilter{ClassroomID: classroomID.String()})
		assert.NoError(t, err)
	})

	t.Run("other classroom", func(t *testing.T) {
		_, err := svc.GetByID(ctx, childID.String(), &authz.ScopeFilter{ClassroomID: uuid.New().String()})
		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
	})

	t.Run("admin has no filter", func(t *testing.T) {
		_, err := svc.GetByID(ctx, childID.String(), nil)
		assert.NoError(t, err)
	})

	t.Run("unassigned employee sees nothing", func(t *testing.T) {
		_, err := svc.GetByID(ctx, childID.String(), &authz.ScopeFilter{MatchNone: true})
		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
	})
}

func TestChildService_Update_RespectsScope(t *testing.T) {
	ctx := context.Background()
	parentID := uuid.New()
	childID := uuid.New()

	repo := &fakeChildRepository{
		findByIDFn: func(ctx context.Context, id string) (*child.Child, error) {
			return &child.Child{ID: childID, ParentID: parentID, IsActive: true}, nil
		},
	}
	svc := child.NewService(repo, zap.NewNop())

	name := "Mio"
	_, err := svc.Update(ctx, childID.String(), &authz.ScopeFilter{ClassroomID: uuid.New().String()}, child.UpdateChildRequest{
		FirstName: &name,
	})

	assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
}

func TestChildDirectory_FindChildRef(t *testing.T) {
	ctx := context.Background()
	childID := uuid.New()
	parentID := uuid.New()

	repo := &fakeChildRepository{
		findByIDFn: func(ctx context.Context, id string) (*child.Child, error) {
			return &child.Child{ID: childID, ParentID: parentID}, nil
		},
	}
	dir := child.NewDirectory(repo)

	ref, err := dir.FindChildRef(ctx, childID.String())

	assert.NoError(t, err)
	assert.Equal(t, childID.String(), ref.ID)
	assert.Equal(t, parentID.String(), ref.ParentID)
	assert.Empty(t, ref.ClassroomID)
}

func TestChildBillingStore_OnlyActiveChildren(t *testing.T) {
	ctx := context.Background()

	active := child.Child{ID: uuid.New(), ParentID: uuid.New(), IsActive: true}
	repo := &fakeChildRepository{
		findActiveFn: func(ctx context.Context) ([]child.Child, error) {
			return []child.Child{active}, nil
		},
	}
	store := child.NewBillingStore(repo)

	billable, err := store.FindActiveBilling(ctx)

	assert.NoError(t, err)
	if assert.Len(t, billable, 1) {
		assert.Equal(t, active.ID, billable[0].ID)
		assert.Equal(t, active.ParentID, billable[0].ParentID)
	}
}
