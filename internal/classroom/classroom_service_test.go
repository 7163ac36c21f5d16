package classroom_test

import (
	"context"
	"testing"

	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"
	"go-daycare/internal/classroom"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeClassroomRepository struct {
	createFn                func(ctx context.Context, cr *classroom.Classroom) error
	findAllFn               func(ctx context.Context) ([]classroom.Classroom, error)
	findByIDFn              func(ctx context.Context, id string) (*classroom.Classroom, error)
	findByAssignedTeacherFn func(ctx context.Context, teacherID string) (*classroom.Classroom, error)
	rosterChildIDsFn        func(ctx context.Context, classroomID string) ([]string, error)
	countEnrolledFn         func(ctx context.Context, classroomID string) (int64, error)
	updateFn                func(ctx context.Context, cr *classroom.Classroom) error
	deleteFn                func(ctx context.Context, id string) error
}

func (f *fakeClassroomRepository) Create(ctx context.Context, cr *classroom.Classroom) error {
	if f.createFn != nil {
		return f.createFn(ctx, cr)
	}
	return nil
}

func (f *fakeClassroomRepository) FindAll(ctx context.Context) ([]classroom.Classroom, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeClassroomRepository) FindByID(ctx context.Context, id string) (*classroom.Classroom, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClassroomRepository) FindByAssignedTeacher(ctx context.Context, teacherID string) (*classroom.Classroom, error) {
	if f.findByAssignedTeacherFn != nil {
		return f.findByAssignedTeacherFn(ctx, teacherID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClassroomRepository) RosterChildIDs(ctx context.Context, classroomID string) ([]string, error) {
	if f.rosterChildIDsFn != nil {
		return f.rosterChildIDsFn(ctx, classroomID)
	}
	return nil, nil
}

func (f *fakeClassroomRepository) CountEnrolled(ctx context.Context, classroomID string) (int64, error) {
	if f.countEnrolledFn != nil {
		return f.countEnrolledFn(ctx, classroomID)
	}
	return 0, nil
}

func (f *fakeClassroomRepository) Update(ctx context.Context, cr *classroom.Classroom) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, cr)
	}
	return nil
}

func (f *fakeClassroomRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestClassroomService_Update_AssignedScope(t *testing.T) {
	ctx := context.Background()
	classroomID := uuid.New()
	teacherID := uuid.New()

	repo := &fakeClassroomRepository{
		findByIDFn: func(ctx context.Context, id string) (*classroom.Classroom, error) {
			return &classroom.Classroom{
				ID:                classroomID,
				Name:              "Sunflowers",
				Capacity:          20,
				AssignedTeacherID: &teacherID,
				IsActive:          true,
			}, nil
		},
	}
	svc := classroom.NewService(repo, zap.NewNop())

	name := "Sunflower Room"

	t.Run("own classroom", func(t *testing.T) {
		resp, err := svc.Update(ctx, classroomID.String(), &authz.ScopeFilter{ClassroomID: classroomID.String()}, classroom.UpdateClassroomRequest{
			Name: &name,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Sunflower Room", resp.Name)
	})

	t.Run("another classroom", func(t *testing.T) {
		_, err := svc.Update(ctx, classroomID.String(), &authz.ScopeFilter{ClassroomID: uuid.New().String()}, classroom.UpdateClassroomRequest{
			Name: &name,
		})
		assert.ErrorIs(t, err, authzerrors.ErrNotAssignedClassroom)
	})
}

func TestClassroomDirectory(t *testing.T) {
	ctx := context.Background()
	classroomID := uuid.New()
	teacherID := uuid.New()
	childID := uuid.New().String()

	t.Run("resolves roster and teacher", func(t *testing.T) {
		repo := &fakeClassroomRepository{
			findByIDFn: func(ctx context.Context, id string) (*classroom.Classroom, error) {
				return &classroom.Classroom{ID: classroomID, AssignedTeacherID: &teacherID}, nil
			},
			rosterChildIDsFn: func(ctx context.Context, id string) ([]string, error) {
				return []string{childID}, nil
			},
		}
		dir := classroom.NewDirectory(repo)

		ref, err := dir.FindClassroomRef(ctx, classroomID.String())

		assert.NoError(t, err)
		assert.Equal(t, teacherID.String(), ref.AssignedTeacher)
		assert.Equal(t, []string{childID}, ref.ChildIDs)
	})

	t.Run("teacher without a classroom resolves to nil", func(t *testing.T) {
		dir := classroom.NewDirectory(&fakeClassroomRepository{})

		ref, err := dir.FindByAssignedTeacher(ctx, teacherID.String())

		assert.NoError(t, err)
		assert.Nil(t, ref)
	})
}
