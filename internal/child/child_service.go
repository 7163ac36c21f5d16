package child

import (
	"context"
	"errors"
	"time"

	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"
	"go-daycare/internal/billing"
	childerrors "go-daycare/internal/child/errors"
	"go-daycare/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateChildRequest) (ChildResponse, error)
	GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]ChildResponse, error)
	GetByID(ctx context.Context, id string, filter *authz.ScopeFilter) (ChildResponse, error)
	Update(ctx context.Context, id string, filter *authz.ScopeFilter, req UpdateChildRequest) (ChildResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("child.service")}
}

func (s *service) Create(ctx context.Context, req CreateChildRequest) (ChildResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	parentID, err := uuid.Parse(req.ParentID)
	if err != nil {
		return ChildResponse{}, childerrors.ErrInvalidParentID
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return ChildResponse{}, childerrors.ErrInvalidDateFormat
	}

	enrollment := time.Now().UTC()
	if req.EnrollmentDate != "" {
		enrollment, err = time.Parse("2006-01-02", req.EnrollmentDate)
		if err != nil {
			return ChildResponse{}, childerrors.ErrInvalidDateFormat
		}
	}

	c := &Child{
		ID:                    uuid.New(),
		ParentID:              parentID,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		DateOfBirth:           dob,
		Allergies:             req.Allergies,
		MedicalNotes:          req.MedicalNotes,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		EnrollmentDate:        enrollment,
		IsActive:              true,
	}

	if req.ClassroomID != "" {
		classroomID, err := uuid.Parse(req.ClassroomID)
		if err != nil {
			return ChildResponse{}, childerrors.ErrInvalidClassroomID
		}
		c.ClassroomID = &classroomID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		l.Error("failed to create child", zap.Error(err))
		return ChildResponse{}, err
	}

	l.Info("child enrolled",
		zap.String("child_id", c.ID.String()),
		zap.String("parent_id", c.ParentID.String()),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, filter *authz.ScopeFilter) ([]ChildResponse, error) {
	children, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(children), nil
}

func (s *service) GetByID(ctx context.Context, id string, filter *authz.ScopeFilter) (ChildResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChildResponse{}, childerrors.ErrChildNotFound
		}
		return ChildResponse{}, err
	}

	if err := checkScope(c, filter); err != nil {
		return ChildResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, filter *authz.ScopeFilter, req UpdateChildRequest) (ChildResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChildResponse{}, childerrors.ErrChildNotFound
		}
		return ChildResponse{}, err
	}

	if err := checkScope(c, filter); err != nil {
		return ChildResponse{}, err
	}

	if req.ClassroomID != nil {
		if *req.ClassroomID == "" {
			c.ClassroomID = nil
		} else {
			classroomID, err := uuid.Parse(*req.ClassroomID)
			if err != nil {
				return ChildResponse{}, childerrors.ErrInvalidClassroomID
			}
			c.ClassroomID = &classroomID
		}
	}
	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Allergies != nil {
		c.Allergies = *req.Allergies
	}
	if req.MedicalNotes != nil {
		c.MedicalNotes = *req.MedicalNotes
	}
	if req.EmergencyContactName != nil {
		c.EmergencyContactName = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		c.EmergencyContactPhone = *req.EmergencyContactPhone
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		l.Error("failed to update child", zap.Error(err))
		return ChildResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return childerrors.ErrChildNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func checkScope(c *Child, filter *authz.ScopeFilter) error {
	if filter == nil {
		return nil
	}
	if filter.MatchNone {
		return authzerrors.ErrChildNotInClassroom
	}
	if filter.ParentID != "" && c.ParentID.String() != filter.ParentID {
		return authzerrors.ErrNotYourChild
	}
	if filter.ClassroomID != "" {
		if c.ClassroomID == nil || c.ClassroomID.String() != filter.ClassroomID {
			return authzerrors.ErrChildNotInClassroom
		}
	}
	return nil
}

func mapToResponse(c Child) ChildResponse {
	resp := ChildResponse{
		ID:                    c.ID.String(),
		ParentID:              c.ParentID.String(),
		FirstName:             c.FirstName,
		LastName:              c.LastName,
		DateOfBirth:           c.DateOfBirth.Format("2006-01-02"),
		Allergies:             c.Allergies,
		MedicalNotes:          c.MedicalNotes,
		EmergencyContactName:  c.EmergencyContactName,
		EmergencyContactPhone: c.EmergencyContactPhone,
		IsActive:              c.IsActive,
	}
	if c.ClassroomID != nil {
		resp.ClassroomID = c.ClassroomID.String()
	}
	if !c.EnrollmentDate.IsZero() {
		resp.EnrollmentDate = c.EnrollmentDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(children []Child) []ChildResponse {
	responses := make([]ChildResponse, 0, len(children))
	for _, c := range children {
		responses = append(responses, mapToResponse(c))
	}
	return responses
}

// Directory adapts the repository to the authorization evaluator's child
// lookup.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) FindChildRef(ctx context.Context, id string) (*authz.ChildRef, error) {
	c, err := d.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ref := &authz.ChildRef{
		ID:       c.ID.String(),
		ParentID: c.ParentID.String(),
	}
	if c.ClassroomID != nil {
		ref.ClassroomID = c.ClassroomID.String()
	}
	return ref, nil
}

// BillingStore adapts the repository to the invoice generator's child feed.
type BillingStore struct {
	repo Repository
}

func NewBillingStore(repo Repository) *BillingStore {
	return &BillingStore{repo: repo}
}

func (b *BillingStore) FindActiveBilling(ctx context.Context) ([]billing.BillableChild, error) {
	children, err := b.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	billable := make([]billing.BillableChild, 0, len(children))
	for _, c := range children {
		billable = append(billable, billing.BillableChild{
			ID:       c.ID,
			ParentID: c.ParentID,
		})
	}
	return billable, nil
}
