package medical

type CreateAlertRequest struct {
	ChildID      string `json:"child_id" binding:"required,uuid"`
	AlertType    string `json:"alert_type" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Severity     string `json:"severity" binding:"required"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

type UpdateAlertRequest struct {
	Severity     *string `json:"severity"`
	Description  *string `json:"description"`
	Instructions *string `json:"instructions"`
	IsActive     *bool   `json:"is_active"`
}

type AlertResponse struct {
	ID           string `json:"id"`
	ChildID      string `json:"child_id"`
	AlertType    string `json:"alert_type"`
	Title        string `json:"title"`
	Severity     string `json:"severity"`
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	IsActive     bool   `json:"is_active"`
	CreatedBy    string `json:"created_by"`
}
