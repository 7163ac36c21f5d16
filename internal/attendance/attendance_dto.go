package attendance

type CheckInRequest struct {
	ChildID string  `json:"child_id" binding:"required,uuid"`
	Date    string  `json:"date"`
	Notes   *string `json:"notes"`
}

type CheckOutRequest struct {
	ChildID string  `json:"child_id" binding:"required,uuid"`
	Date    string  `json:"date"`
	Notes   *string `json:"notes"`
}

type RecordAbsenceRequest struct {
	ChildID string  `json:"child_id" binding:"required,uuid"`
	Date    string  `json:"date" binding:"required"`
	Status  string  `json:"status" binding:"required"`
	Notes   *string `json:"notes"`
}

type UpdateAttendanceRequest struct {
	MealsServed *int    `json:"meals_served" binding:"omitempty,min=0"`
	NapMinutes  *int    `json:"nap_minutes" binding:"omitempty,min=0"`
	Notes       *string `json:"notes"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	ChildID        string  `json:"child_id"`
	AttendanceDate string  `json:"attendance_date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	Minutes        *int    `json:"minutes,omitempty"`
	Status         string  `json:"status"`
	MealsServed    int     `json:"meals_served"`
	NapMinutes     *int    `json:"nap_minutes,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	RecordedBy     string  `json:"recorded_by,omitempty"`
}
