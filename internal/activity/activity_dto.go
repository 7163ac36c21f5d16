package activity

type CreateActivityRequest struct {
	ChildID      string `json:"child_id" binding:"required,uuid"`
	ActivityType string `json:"activity_type" binding:"required"`
	Description  string `json:"description" binding:"required"`
	OccurredAt   string `json:"occurred_at"`
}

type ActivityResponse struct {
	ID           string `json:"id"`
	ChildID      string `json:"child_id"`
	ActivityType string `json:"activity_type"`
	Description  string `json:"description"`
	OccurredAt   string `json:"occurred_at"`
	RecordedBy   string `json:"recorded_by"`
}
