package http

import "time"

type CreateRentalRequest struct {
	BookID     int32 `json:"bookId" validate:"required,gt=0"`
	BorrowerID int32 `json:"borrowerId" validate:"required,gt=0"`
}

type PutRentalRuleRequest struct {
	Value string `json:"value" validate:"required,max=255"`
}

type RentalResponse struct {
	ID         int32      `json:"id"`
	BookID     int32      `json:"bookId"`
	BorrowerID int32      `json:"borrowerId"`
	RentalDate time.Time  `json:"rentalDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `json:"status"`
}

type RentalPageResponse struct {
	Items    []RentalResponse `json:"items"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"pageSize"`
}

type InventoryResponse struct {
	BookID          int32 `json:"bookId"`
	TotalCopies     int32 `json:"totalCopies"`
	AvailableCopies int32 `json:"availableCopies"`
	Outstanding     int32 `json:"outstanding"`
	Consistent      bool  `json:"consistent"`
}

type RentalRuleResponse struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	UpdatedOn time.Time `json:"updatedOn"`
}

type SweepResponse struct {
	Updated int `json:"updated"`
}

type ErrorResponse struct {
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}
