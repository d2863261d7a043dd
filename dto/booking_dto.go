package dto

// CreateBookingRequest is the payload for reserving a property.
type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	UserEmail  string `json:"userEmail" binding:"required,email"`
}

// UpdateBookingRequest is the admin-only partial status mutation. Empty
// fields are left untouched.
type UpdateBookingRequest struct {
	Status        string `json:"status,omitempty" binding:"omitempty,oneof=Pending Confirmed Cancelled"`
	PaymentStatus string `json:"paymentStatus,omitempty" binding:"omitempty,oneof=Unpaid Paid"`
}
