package billing

type GenerateInvoicesRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"`
}

type ProcessPaymentRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	TransactionID *string `json:"transaction_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PreviewDiscountRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Kind   string  `json:"kind" binding:"required"`
	Value  float64 `json:"value" binding:"required"`
}

type DiscountPreviewResponse struct {
	Amount     float64 `json:"amount"`
	Kind       string  `json:"kind"`
	Value      float64 `json:"value"`
	Discounted float64 `json:"discounted"`
}

type LineItemResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Quantity    int     `json:"quantity"`
	Hours       float64 `json:"hours"`
}

type InvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	ParentID      string             `json:"parent_id"`
	ChildID       string             `json:"child_id"`
	PeriodStart   string             `json:"period_start"`
	PeriodEnd     string             `json:"period_end"`
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	Amount        float64            `json:"amount"`
	TaxAmount     float64            `json:"tax_amount"`
	TotalAmount   float64            `json:"total_amount"`
	Status        string             `json:"status"`
	DueDate       string             `json:"due_date"`
	PaymentMethod *string            `json:"payment_method,omitempty"`
	TransactionID *string            `json:"transaction_id,omitempty"`
	PaymentDate   *string            `json:"payment_date,omitempty"`
	LineItems     []LineItemResponse `json:"line_items"`
}
