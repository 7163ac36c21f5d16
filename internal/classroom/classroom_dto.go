package classroom

type CreateClassroomRequest struct {
	Name              string `json:"name" binding:"required"`
	AgeGroup          string `json:"age_group"`
	Capacity          int    `json:"capacity" binding:"omitempty,min=1"`
	AssignedTeacherID string `json:"assigned_teacher_id" binding:"omitempty,uuid"`
}

type UpdateClassroomRequest struct {
	Name              *string `json:"name"`
	AgeGroup          *string `json:"age_group"`
	Capacity          *int    `json:"capacity" binding:"omitempty,min=1"`
	AssignedTeacherID *string `json:"assigned_teacher_id" binding:"omitempty,uuid"`
	IsActive          *bool   `json:"is_active"`
}

type ClassroomResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	AgeGroup          string `json:"age_group,omitempty"`
	Capacity          int    `json:"capacity"`
	AssignedTeacherID string `json:"assigned_teacher_id,omitempty"`
	IsActive          bool   `json:"is_active"`
	Enrolled          int    `json:"enrolled"`
}
