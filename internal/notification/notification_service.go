package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "go-daycare/internal/notification/errors"
	"go-daycare/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	GetByUser(ctx context.Context, userID string) ([]NotificationResponse, error)
	CountUnread(ctx context.Context, userID string) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, id, userID string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("notification.service")}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
	}

	n := Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        req.Type,
		ReferenceID: req.ReferenceID,
		Title:       req.Title,
		Body:        req.Body,
	}

	if err := s.repo.Create(ctx, &n); err != nil {
		return NotificationResponse{}, mapRepositoryError(err)
	}

	l.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("type", req.Type),
	)

	return mapToResponse(n), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) CountUnread(ctx context.Context, userID string) (UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Unread: count}, nil
}

func (s *service) MarkRead(ctx context.Context, id, userID string) (NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if n.UserID.String() != userID {
		return NotificationResponse{}, notificationerrors.ErrNotYourNotification
	}

	if !n.IsRead {
		n.IsRead = true
		if err := s.repo.Update(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
	}

	return mapToResponse(*n), nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID.String(),
		Type:        n.Type,
		ReferenceID: n.ReferenceID,
		Title:       n.Title,
		Body:        n.Body,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}
