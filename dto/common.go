package dto

// ErrorResponse is the uniform error body. Message is always safe to show
// to a caller; internal detail stays in the logs.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NoticeResponse carries an informational message, e.g. the existing-user
// notice on repeated registration.
type NoticeResponse struct {
	Message string `json:"message"`
}

// InsertResult mirrors the store's insert acknowledgement.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult mirrors the store's update acknowledgement.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the store's delete acknowledgement. DeletedCount is
// zero when the identifier matched nothing; that is still a success.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
