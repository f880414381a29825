package articles

// SubmitRequest defines the body for article submission
type SubmitRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Body     string `json:"body" validate:"required,min=10"`
	Category string `json:"category" validate:"required,min=2,max=50"`
	ImageURL string `json:"image_url"`
}

// UpdateRequest defines the body for editing an article. Empty fields keep
// their stored value.
type UpdateRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// ModerateRequest defines the body for the moderation endpoint
type ModerateRequest struct {
	Status string `json:"status" validate:"required"`
}
