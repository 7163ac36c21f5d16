package medical

import (
	"context"
	"errors"

	"go-daycare/internal/authz"
	medicalerrors "go-daycare/internal/medical/errors"
	"go-daycare/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor authz.Principal, req CreateAlertRequest) (AlertResponse, error)
	GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]AlertResponse, error)
	GetByChild(ctx context.Context, childID string) ([]AlertResponse, error)
	Update(ctx context.Context, actor authz.Principal, id string, req UpdateAlertRequest) (AlertResponse, error)
}

// AccessPolicy re-checks that the actor may touch the addressed child's
// alerts; the route middleware only sees the grant matrix.
type AccessPolicy interface {
	Evaluate(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error)
}

type service struct {
	repo   Repository
	policy AccessPolicy
	logger *zap.Logger
}

func NewService(repo Repository, policy AccessPolicy, logger *zap.Logger) Service {
	return &service{repo: repo, policy: policy, logger: logger.Named("medical.service")}
}

func (s *service) Create(ctx context.Context, actor authz.Principal, req CreateAlertRequest) (AlertResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !isKnownAlertType(req.AlertType) {
		return AlertResponse{}, medicalerrors.ErrInvalidAlertType
	}
	if !isKnownSeverity(req.Severity) {
		return AlertResponse{}, medicalerrors.ErrInvalidSeverity
	}

	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return AlertResponse{}, medicalerrors.ErrInvalidChildID
	}

	creator, err := uuid.Parse(actor.ID)
	if err != nil {
		return AlertResponse{}, medicalerrors.ErrInvalidChildID
	}

	ref := &authz.ResourceRef{ChildID: req.ChildID}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceMedicalAlert, authz.ActionCreate, ref); err != nil {
		return AlertResponse{}, err
	}

	m := &MedicalAlert{
		ID:           uuid.New(),
		ChildID:      childID,
		AlertType:    req.AlertType,
		Title:        req.Title,
		Severity:     req.Severity,
		Description:  req.Description,
		Instructions: req.Instructions,
		IsActive:     true,
		CreatedBy:    creator,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		l.Error("failed to create medical alert", zap.Error(err))
		return AlertResponse{}, mapRepositoryError(err)
	}

	l.Info("medical alert created",
		zap.String("child_id", m.ChildID.String()),
		zap.String("alert_type", m.AlertType),
		zap.String("severity", m.Severity),
	)

	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]AlertResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]AlertResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByChild(ctx context.Context, childID string) ([]AlertResponse, error) {
	rows, err := s.repo.FindByChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	res := make([]AlertResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, actor authz.Principal, id string, req UpdateAlertRequest) (AlertResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AlertResponse{}, medicalerrors.ErrAlertNotFound
		}
		return AlertResponse{}, err
	}

	ref := &authz.ResourceRef{ChildID: m.ChildID.String()}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceMedicalAlert, authz.ActionUpdate, ref); err != nil {
		return AlertResponse{}, err
	}

	if req.Severity != nil {
		if !isKnownSeverity(*req.Severity) {
			return AlertResponse{}, medicalerrors.ErrInvalidSeverity
		}
		m.Severity = *req.Severity
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Instructions != nil {
		m.Instructions = *req.Instructions
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return AlertResponse{}, err
	}

	return mapToResponse(*m), nil
}

func mapToResponse(m MedicalAlert) AlertResponse {
	return AlertResponse{
		ID:           m.ID.String(),
		ChildID:      m.ChildID.String(),
		AlertType:    m.AlertType,
		Title:        m.Title,
		Severity:     m.Severity,
		Description:  m.Description,
		Instructions: m.Instructions,
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy.String(),
	}
}
