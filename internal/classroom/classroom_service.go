package classroom

import (
	"context"
	"errors"

	"go-daycare/internal/authz"
	authzerrors "go-daycare/internal/authz/errors"
	classroomerrors "go-daycare/internal/classroom/errors"
	"go-daycare/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateClassroomRequest) (ClassroomResponse, error)
	GetAll(ctx context.Context) ([]ClassroomResponse, error)
	GetByID(ctx context.Context, id string) (ClassroomResponse, error)
	Update(ctx context.Context, id string, filter *authz.ScopeFilter, req UpdateClassroomRequest) (ClassroomResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("classroom.service")}
}

func (s *service) Create(ctx context.Context, req CreateClassroomRequest) (ClassroomResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	cr := &Classroom{
		ID:       uuid.New(),
		Name:     req.Name,
		AgeGroup: req.AgeGroup,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if cr.Capacity == 0 {
		cr.Capacity = 20
	}

	if req.AssignedTeacherID != "" {
		teacherID, err := uuid.Parse(req.AssignedTeacherID)
		if err != nil {
			return ClassroomResponse{}, classroomerrors.ErrInvalidTeacherID
		}
		cr.AssignedTeacherID = &teacherID
	}

	if err := s.repo.Create(ctx, cr); err != nil {
		l.Error("failed to create classroom", zap.Error(err))
		return ClassroomResponse{}, mapRepositoryError(err)
	}

	l.Info("classroom created", zap.String("classroom_id", cr.ID.String()))

	return mapToResponse(*cr, 0), nil
}

func (s *service) GetAll(ctx context.Context) ([]ClassroomResponse, error) {
	classrooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ClassroomResponse, 0, len(classrooms))
	for _, cr := range classrooms {
		enrolled, err := s.repo.CountEnrolled(ctx, cr.ID.String())
		if err != nil {
			return nil, err
		}
		responses = append(responses, mapToResponse(cr, int(enrolled)))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClassroomResponse, error) {
	cr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClassroomResponse{}, classroomerrors.ErrClassroomNotFound
		}
		return ClassroomResponse{}, err
	}

	enrolled, err := s.repo.CountEnrolled(ctx, id)
	if err != nil {
		return ClassroomResponse{}, err
	}

	return mapToResponse(*cr, int(enrolled)), nil
}

func (s *service) Update(ctx context.Context, id string, filter *authz.ScopeFilter, req UpdateClassroomRequest) (ClassroomResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	cr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClassroomResponse{}, classroomerrors.ErrClassroomNotFound
		}
		return ClassroomResponse{}, err
	}

	// Employees may only touch the classroom they are assigned to.
	if filter != nil && filter.ClassroomID != "" && filter.ClassroomID != cr.ID.String() {
		return ClassroomResponse{}, authzerrors.ErrNotAssignedClassroom
	}

	if req.Name != nil {
		cr.Name = *req.Name
	}
	if req.AgeGroup != nil {
		cr.AgeGroup = *req.AgeGroup
	}
	if req.Capacity != nil {
		cr.Capacity = *req.Capacity
	}
	if req.AssignedTeacherID != nil {
		if *req.AssignedTeacherID == "" {
			cr.AssignedTeacherID = nil
		} else {
			teacherID, err := uuid.Parse(*req.AssignedTeacherID)
			if err != nil {
				return ClassroomResponse{}, classroomerrors.ErrInvalidTeacherID
			}
			cr.AssignedTeacherID = &teacherID
		}
	}
	if req.IsActive != nil {
		cr.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, cr); err != nil {
		l.Error("failed to update classroom", zap.Error(err))
		return ClassroomResponse{}, mapRepositoryError(err)
	}

	enrolled, err := s.repo.CountEnrolled(ctx, id)
	if err != nil {
		return ClassroomResponse{}, err
	}

	return mapToResponse(*cr, int(enrolled)), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return classroomerrors.ErrClassroomNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func mapToResponse(cr Classroom, enrolled int) ClassroomResponse {
	resp := ClassroomResponse{
		ID:       cr.ID.String(),
		Name:     cr.Name,
		AgeGroup: cr.AgeGroup,
		Capacity: cr.Capacity,
		IsActive: cr.IsActive,
		Enrolled: enrolled,
	}
	if cr.AssignedTeacherID != nil {
		resp.AssignedTeacherID = cr.AssignedTeacherID.String()
	}
	return resp
}

// Directory adapts the repository to the authorization evaluator's classroom
// lookups.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) FindClassroomRef(ctx context.Context, id string) (*authz.ClassroomRef, error) {
	cr, err := d.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.toRef(ctx, cr)
}

func (d *Directory) FindByAssignedTeacher(ctx context.Context, employeeID string) (*authz.ClassroomRef, error) {
	cr, err := d.repo.FindByAssignedTeacher(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return d.toRef(ctx, cr)
}

func (d *Directory) toRef(ctx context.Context, cr *Classroom) (*authz.ClassroomRef, error) {
	childIDs, err := d.repo.RosterChildIDs(ctx, cr.ID.String())
	if err != nil {
		return nil, err
	}

	ref := &authz.ClassroomRef{
		ID:       cr.ID.String(),
		ChildIDs: childIDs,
	}
	if cr.AssignedTeacherID != nil {
		ref.AssignedTeacher = cr.AssignedTeacherID.String()
	}
	return ref, nil
}
