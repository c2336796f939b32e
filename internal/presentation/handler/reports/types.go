package reports

import "time"

// createReportRequest represents a new field report for a disaster
type createReportRequest struct {
	Content  string `json:"content" example:"Water rising fast on Canal Street" minLength:"1"` // Free-text observation
	ImageURL string `json:"imageUrl,omitempty" example:"https://img.example.com/flood.jpg"`    // Optional supporting image
}

// reportResponse represents a field report and its verification state
type reportResponse struct {
	ID                 string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440010"`
	DisasterID         string    `json:"disasterId" example:"550e8400-e29b-41d4-a716-446655440000"`
	SubmittedBy        string    `json:"submittedBy" example:"marco"`
	Content            string    `json:"content" example:"Water rising fast on Canal Street"`
	ImageURL           string    `json:"imageUrl,omitempty" example:"https://img.example.com/flood.jpg"`
	VerificationStatus string    `json:"verificationStatus" example:"pending" enum:"pending,verified,unverified"` // pending until an explicit verification request runs
	VerificationNote   string    `json:"verificationNote,omitempty" example:"no manipulation detected"`
	CreatedAt          time.Time `json:"createdAt"`
}
