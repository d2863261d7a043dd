package dto

// CreatePropertyRequest is the payload for adding a listing.
type CreatePropertyRequest struct {
	UserEmail    string  `json:"userEmail" binding:"required,email"`
	PropertyName string  `json:"propertyName" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" binding:"gte=0"`
	Location     string  `json:"location"`
	Image        string  `json:"image"`
}

// UpdatePropertyRequest is the whitelisted full-field replace applied on
// PUT. Identifier, owner and createdAt are immutable; unknown payload
// fields are dropped by the binding itself. Status is only written when
// present.
type UpdatePropertyRequest struct {
	PropertyName string  `json:"propertyName" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" binding:"gte=0"`
	Location     string  `json:"location"`
	Image        string  `json:"image"`
	Status       string  `json:"status,omitempty"`
}

// PropertyListQuery captures the public listing filters. Search matches the
// property name case-insensitively, Category matches exactly, SortBy is
// "price" (ascending) or "date" (newest first).
type PropertyListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	SortBy   string `form:"sortBy"`
}
