package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-daycare/internal/attendance/errors"
	"go-daycare/internal/authz"
	"go-daycare/internal/billing"
	"go-daycare/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CheckIn(ctx context.Context, actor authz.Principal, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, actor authz.Principal, req CheckOutRequest) (AttendanceResponse, error)
	RecordAbsence(ctx context.Context, actor authz.Principal, req RecordAbsenceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, actor authz.Principal, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]AttendanceResponse, error)
	GetByChild(ctx context.Context, childID, startDate, endDate string) ([]AttendanceResponse, error)
}

// AccessPolicy decides whether the actor may touch the addressed child's
// records. The route middleware only checks the grant matrix; roster and
// ownership checks happen here, against the child actually being written.
type AccessPolicy interface {
	Evaluate(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy AccessPolicy
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policy AccessPolicy, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, policy: policy, logger: logger.Named("attendance.service")}
}

func (s *service) CheckIn(ctx context.Context, actor authz.Principal, req CheckInRequest) (AttendanceResponse, error) {
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidChildID
	}

	ref := &authz.ResourceRef{ChildID: req.ChildID}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceAttendance, authz.ActionCreate, ref); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()

	date, err := resolveDate(req.Date, now)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	existing, err := qtx.FindByChildAndDate(ctx, req.ChildID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		ChildID:        childID,
		AttendanceDate: date,
		CheckIn:        &now,
		Status:         StatusPresent,
		Notes:          req.Notes,
	}
	if recorder, parseErr := uuid.Parse(actor.ID); parseErr == nil {
		row.RecordedBy = &recorder
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("child checked in",
		zap.String("child_id", req.ChildID),
		zap.String("date", date.Format("2006-01-02")),
	)

	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, actor authz.Principal, req CheckOutRequest) (AttendanceResponse, error) {
	ref := &authz.ResourceRef{ChildID: req.ChildID}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceAttendance, authz.ActionUpdate, ref); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()

	date, err := resolveDate(req.Date, now)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	row, err := qtx.FindByChildAndDate(ctx, req.ChildID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	// Duration is fixed at the check-out boundary and never recomputed.
	if now.Before(*row.CheckIn) {
		return AttendanceResponse{}, attendanceerrors.ErrCheckOutBeforeCheckIn
	}
	minutes := int(now.Sub(*row.CheckIn).Minutes())

	row.CheckOut = &now
	row.Minutes = &minutes
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("child checked out",
		zap.String("child_id", req.ChildID),
		zap.Int("minutes", minutes),
	)

	return mapToResponse(*row), nil
}

func (s *service) RecordAbsence(ctx context.Context, actor authz.Principal, req RecordAbsenceRequest) (AttendanceResponse, error) {
	if !isKnownStatus(req.Status) || req.Status == StatusPresent {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidChildID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	ref := &authz.ResourceRef{ChildID: req.ChildID}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceAttendance, authz.ActionCreate, ref); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByChildAndDate(ctx, req.ChildID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		ChildID:        childID,
		AttendanceDate: date,
		Status:         req.Status,
		Notes:          req.Notes,
	}
	if recorder, parseErr := uuid.Parse(actor.ID); parseErr == nil {
		row.RecordedBy = &recorder
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor authz.Principal, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	ref := &authz.ResourceRef{ChildID: row.ChildID.String()}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceAttendance, authz.ActionUpdate, ref); err != nil {
		return AttendanceResponse{}, err
	}

	if req.MealsServed != nil {
		row.MealsServed = *req.MealsServed
	}
	if req.NapMinutes != nil {
		row.NapMinutes = req.NapMinutes
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByChild(ctx context.Context, childID, startDate, endDate string) ([]AttendanceResponse, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindRange(ctx, childID, start, end)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func resolveDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now.Truncate(24 * time.Hour), nil
	}
	return time.Parse("2006-01-02", value)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		ChildID:        a.ChildID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Minutes:        a.Minutes,
		Status:         a.Status,
		MealsServed:    a.MealsServed,
		NapMinutes:     a.NapMinutes,
		Notes:          a.Notes,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.RecordedBy != nil {
		resp.RecordedBy = a.RecordedBy.String()
	}
	return resp
}

// BillingStore adapts attendance rows into calculator input. Only rows with a
// recorded duration qualify; open (not yet checked out) rows are excluded by
// the nil Minutes check inside the calculator.
type BillingStore struct {
	repo Repository
}

func NewBillingStore(repo Repository) *BillingStore {
	return &BillingStore{repo: repo}
}

func (b *BillingStore) FindCompletedPresent(ctx context.Context, childID uuid.UUID, start, end time.Time) ([]billing.AttendanceLine, error) {
	rows, err := b.repo.FindRange(ctx, childID.String(), start, end)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.AttendanceLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, billing.AttendanceLine{
			Date:    row.AttendanceDate,
			Status:  row.Status,
			Minutes: row.Minutes,
		})
	}
	return lines, nil
}
