package notification

type CreateNotificationRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	Type        string `json:"type" binding:"required"`
	ReferenceID string `json:"reference_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

type NotificationResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
