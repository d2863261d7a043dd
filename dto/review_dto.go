package dto

// CreateReviewRequest is the payload for leaving a review on a property.
type CreateReviewRequest struct {
	PropertyID    string  `json:"propertyId" binding:"required"`
	ReviewerEmail string  `json:"reviewerEmail" binding:"required,email"`
	ReviewerName  string  `json:"reviewerName"`
	Rating        float64 `json:"rating" binding:"gte=0,lte=5"`
	Comment       string  `json:"comment"`
}
