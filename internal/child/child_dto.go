package child

type CreateChildRequest struct {
	ParentID              string `json:"parent_id" binding:"required,uuid"`
	ClassroomID           string `json:"classroom_id" binding:"omitempty,uuid"`
	FirstName             string `json:"first_name" binding:"required"`
	LastName              string `json:"last_name" binding:"required"`
	DateOfBirth           string `json:"date_of_birth" binding:"required"`
	Allergies             string `json:"allergies"`
	MedicalNotes          string `json:"medical_notes"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	EnrollmentDate        string `json:"enrollment_date"`
}

type UpdateChildRequest struct {
	ClassroomID           *string `json:"classroom_id" binding:"omitempty,uuid"`
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	Allergies             *string `json:"allergies"`
	MedicalNotes          *string `json:"medical_notes"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	IsActive              *bool   `json:"is_active"`
}

type ChildResponse struct {
	ID                    string `json:"id"`
	ParentID              string `json:"parent_id"`
	ClassroomID           string `json:"classroom_id,omitempty"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	DateOfBirth           string `json:"date_of_birth"`
	Allergies             string `json:"allergies,omitempty"`
	MedicalNotes          string `json:"medical_notes,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
	EnrollmentDate        string `json:"enrollment_date,omitempty"`
	IsActive              bool   `json:"is_active"`
}
