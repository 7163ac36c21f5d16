package activity

import (
	"context"
	"time"

	activityerrors "go-daycare/internal/activity/errors"
	"go-daycare/internal/authz"
	"go-daycare/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actor authz.Principal, req CreateActivityRequest) (ActivityResponse, error)
	GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]ActivityResponse, error)
	GetByChild(ctx context.Context, childID string) ([]ActivityResponse, error)
}

// AccessPolicy re-checks that the actor may record against the addressed
// child; the route middleware only sees the grant matrix.
type AccessPolicy interface {
	Evaluate(ctx context.Context, p authz.Principal, resource, action string, ref *authz.ResourceRef) (authz.Decision, error)
}

type service struct {
	repo   Repository
	policy AccessPolicy
	logger *zap.Logger
}

func NewService(repo Repository, policy AccessPolicy, logger *zap.Logger) Service {
	return &service{repo: repo, policy: policy, logger: logger.Named("activity.service")}
}

func (s *service) Create(ctx context.Context, actor authz.Principal, req CreateActivityRequest) (ActivityResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !isKnownActivityType(req.ActivityType) {
		return ActivityResponse{}, activityerrors.ErrInvalidActivityType
	}

	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return ActivityResponse{}, activityerrors.ErrInvalidChildID
	}

	recorder, err := uuid.Parse(actor.ID)
	if err != nil {
		return ActivityResponse{}, activityerrors.ErrInvalidChildID
	}

	ref := &authz.ResourceRef{ChildID: req.ChildID}
	if _, err := s.policy.Evaluate(ctx, actor, authz.ResourceActivity, authz.ActionCreate, ref); err != nil {
		return ActivityResponse{}, err
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != "" {
		occurredAt, err = time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return ActivityResponse{}, activityerrors.ErrInvalidTimestamp
		}
	}

	a := &Activity{
		ID:           uuid.New(),
		ChildID:      childID,
		ActivityType: req.ActivityType,
		Description:  req.Description,
		OccurredAt:   occurredAt,
		RecordedBy:   recorder,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		l.Error("failed to create activity", zap.Error(err))
		return ActivityResponse{}, err
	}

	l.Info("activity recorded",
		zap.String("child_id", a.ChildID.String()),
		zap.String("activity_type", a.ActivityType),
	)

	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]ActivityResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]ActivityResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByChild(ctx context.Context, childID string) ([]ActivityResponse, error) {
	rows, err := s.repo.FindByChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	res := make([]ActivityResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID.String(),
		ChildID:      a.ChildID.String(),
		ActivityType: a.ActivityType,
		Description:  a.Description,
		OccurredAt:   a.OccurredAt.Format(time.RFC3339),
		RecordedBy:   a.RecordedBy.String(),
	}
}
