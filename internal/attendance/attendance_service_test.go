package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-daycare/internal/attendance"
	attendanceerrors "go-daycare/internal/attendance/errors"
	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	withTxFn             func(tx *sql.Tx) attendance.Repository
	createFn             func(ctx context.Context, a *attendance.Attendance) error
	findByChildAndDateFn func(ctx context.Context, childID string, date time.Time) (*attendance.Attendance, error)
	findAllFn            func(ctx context.Context, filter *authz.ScopeFilter) ([]attendance.Attendance, error)
	findByIDFn           func(ctx context.Context, id string) (*attendance.Attendance, error)
	findRangeFn          func(ctx context.Context, childID string, start, end time.Time) ([]attendance.Attendance, error)
	updateFn             func(ctx context.Context, a *attendance.Attendance) error
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByChildAndDate(ctx context.Context, childID string, date time.Time) (*attendance.Attendance, error) {
	if f.findByChildAndDateFn != nil {
		return f.findByChildAndDateFn(ctx, childID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindAll(ctx context.Context, filter *authz.ScopeFilter) ([]attendance.Attendance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindRange(ctx context.Context, childID string, start, end time.Time) ([]attendance.Attendance, error) {
	if f.findRangeFn != nil {
		return f.findRangeFn(ctx, childID, start, end)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
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

type attendanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *fakeAttendanceRepository
	policy  *fakeAccessPolicy
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	policy := &fakeAccessPolicy{}
	svc := attendance.NewService(db, repo, policy, zap.NewNop())

	return &attendanceServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, policy: policy}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	childID := uuid.New().String()
	actor := authz.Principal{ID: uuid.New().String(), Role: authz.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var created *attendance.Attendance
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		}

		resp, err := deps.service.CheckIn(ctx, actor, attendance.CheckInRequest{
			ChildID: childID,
			Date:    "2026-03-02",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.NotNil(t, resp.CheckIn)
		assert.Nil(t, resp.CheckOut)
		if assert.NotNil(t, created) {
			assert.Equal(t, childID, created.ChildID.String())
			assert.Equal(t, actor.ID, created.RecordedBy.String())
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate for the same day", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByChildAndDateFn = func(ctx context.Context, cid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: uuid.New(), ChildID: uuid.MustParse(cid)}, nil
		}

		_, err := deps.service.CheckIn(ctx, actor, attendance.CheckInRequest{
			ChildID: childID,
			Date:    "2026-03-02",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad date", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.CheckIn(ctx, actor, attendance.CheckInRequest{
			ChildID: childID,
			Date:    "02-03-2026",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("child outside the actor's classroom", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.policy.evaluateFn = func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
			assert.Equal(t, actor, p)
			assert.Equal(t, authz.ResourceAttendance, resource)
			assert.Equal(t, authz.ActionCreate, action)
			if assert.NotNil(t, ref) {
				assert.Equal(t, childID, ref.ChildID)
			}
			return authz.Decision{}, authzerrors.ErrChildNotInClassroom
		}
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("denied check-in must not reach the repository")
			return nil
		}

		_, err := deps.service.CheckIn(ctx, actor, attendance.CheckInRequest{
			ChildID: childID,
			Date:    "2026-03-02",
		})

		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed child id", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CheckIn(ctx, actor, attendance.CheckInRequest{
			ChildID: "not-a-uuid",
			Date:    "2026-03-02",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidChildID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	childID := uuid.New().String()
	actor := authz.Principal{ID: uuid.New().String(), Role: authz.RoleEmployee}

	t.Run("fixes the duration in minutes", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		checkIn := time.Now().UTC().Add(-5 * time.Hour)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByChildAndDateFn = func(ctx context.Context, cid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:      uuid.New(),
				ChildID: uuid.MustParse(cid),
				CheckIn: &checkIn,
				Status:  attendance.StatusPresent,
			}, nil
		}

		var updated *attendance.Attendance
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		resp, err := deps.service.CheckOut(ctx, actor, attendance.CheckOutRequest{ChildID: childID})

		assert.NoError(t, err)
		assert.NotNil(t, resp.CheckOut)
		if assert.NotNil(t, updated) && assert.NotNil(t, updated.Minutes) {
			assert.Equal(t, 300, *updated.Minutes)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("without a check-in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByChildAndDateFn = func(ctx context.Context, cid string, date time.Time) (*attendance.Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.CheckOut(ctx, actor, attendance.CheckOutRequest{ChildID: childID})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("twice", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		checkIn := time.Now().UTC().Add(-6 * time.Hour)
		checkOut := time.Now().UTC().Add(-1 * time.Hour)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByChildAndDateFn = func(ctx context.Context, cid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:       uuid.New(),
				ChildID:  uuid.MustParse(cid),
				CheckIn:  &checkIn,
				CheckOut: &checkOut,
				Status:   attendance.StatusPresent,
			}, nil
		}

		_, err := deps.service.CheckOut(ctx, actor, attendance.CheckOutRequest{ChildID: childID})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("child outside the actor's classroom", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.policy.evaluateFn = func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
			assert.Equal(t, authz.ActionUpdate, action)
			return authz.Decision{}, authzerrors.ErrChildNotInClassroom
		}
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("denied check-out must not reach the repository")
			return nil
		}

		_, err := deps.service.CheckOut(ctx, actor, attendance.CheckOutRequest{ChildID: childID})

		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_RecordAbsence(t *testing.T) {
	ctx := context.Background()
	childID := uuid.New().String()
	actor := authz.Principal{ID: uuid.New().String(), Role: authz.RoleEmployee}

	t.Run("sick day", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.RecordAbsence(ctx, actor, attendance.RecordAbsenceRequest{
			ChildID: childID,
			Date:    "2026-03-02",
			Status:  attendance.StatusSick,
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusSick, resp.Status)
		assert.Nil(t, resp.CheckIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("present is not an absence", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.RecordAbsence(ctx, actor, attendance.RecordAbsenceRequest{
			ChildID: childID,
			Date:    "2026-03-02",
			Status:  attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})

	t.Run("child outside the actor's classroom", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.policy.evaluateFn = func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
			return authz.Decision{}, authzerrors.ErrChildNotInClassroom
		}

		_, err := deps.service.RecordAbsence(ctx, actor, attendance.RecordAbsenceRequest{
			ChildID: childID,
			Date:    "2026-03-02",
			Status:  attendance.StatusSick,
		})

		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed child id", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.RecordAbsence(ctx, actor, attendance.RecordAbsenceRequest{
			ChildID: "not-a-uuid",
			Date:    "2026-03-02",
			Status:  attendance.StatusSick,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidChildID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_Update(t *testing.T) {
	ctx := context.Background()
	actor := authz.Principal{ID: uuid.New().String(), Role: authz.RoleEmployee}

	t.Run("day details", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		rowID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: rowID, ChildID: uuid.New(), Status: attendance.StatusPresent}, nil
		}

		meals := 2
		nap := 45
		resp, err := deps.service.Update(ctx, actor, rowID.String(), attendance.UpdateAttendanceRequest{
			MealsServed: &meals,
			NapMinutes:  &nap,
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.MealsServed)
		if assert.NotNil(t, resp.NapMinutes) {
			assert.Equal(t, 45, *resp.NapMinutes)
		}
	})

	t.Run("ownership is checked against the row's child", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		rowID := uuid.New()
		rowChild := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: rowID, ChildID: rowChild, Status: attendance.StatusPresent}, nil
		}
		deps.policy.evaluateFn = func(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error) {
			assert.Equal(t, authz.ResourceAttendance, resource)
			assert.Equal(t, authz.ActionUpdate, action)
			if assert.NotNil(t, ref) {
				assert.Equal(t, rowChild.String(), ref.ChildID)
			}
			return authz.Decision{}, authzerrors.ErrChildNotInClassroom
		}
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("denied update must not reach the repository")
			return nil
		}

		meals := 1
		_, err := deps.service.Update(ctx, actor, rowID.String(), attendance.UpdateAttendanceRequest{
			MealsServed: &meals,
		})

		assert.ErrorIs(t, err, authzerrors.ErrChildNotInClassroom)
	})
}

func TestAttendanceBillingStore_FindCompletedPresent(t *testing.T) {
	ctx := context.Background()
	childID := uuid.New()

	mins := 480
	repo := &fakeAttendanceRepository{
		findRangeFn: func(ctx context.Context, cid string, start, end time.Time) ([]attendance.Attendance, error) {
			assert.Equal(t, childID.String(), cid)
			return []attendance.Attendance{
				{AttendanceDate: start, Status: attendance.StatusPresent, Minutes: &mins},
				{AttendanceDate: start.AddDate(0, 0, 1), Status: attendance.StatusAbsent},
			}, nil
		},
	}
	store := attendance.NewBillingStore(repo)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lines, err := store.FindCompletedPresent(ctx, childID, start, start.AddDate(0, 1, 0))

	assert.NoError(t, err)
	if assert.Len(t, lines, 2) {
		assert.Equal(t, "present", lines[0].Status)
		assert.Equal(t, 480, *lines[0].Minutes)
		assert.Nil(t, lines[1].Minutes)
	}
}
