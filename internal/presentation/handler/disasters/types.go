package disasters

import "time"

// createDisasterRequest represents the request to register a new disaster
type createDisasterRequest struct {
	Title        string   `json:"title" example:"Hurricane Elena Landfall" minLength:"1"`           // Short human-readable title
	LocationName string   `json:"locationName" example:"New Orleans"`                               // Free-form place name, geocoded on create
	Description  string   `json:"description" example:"Category 3 landfall, levee stress reported"` // Longer context for responders
	Tags         []string `json:"tags" example:"hurricane,flood"`                                   // Free-form classification tags
}

// updateDisasterRequest represents a partial update; omitted fields stay untouched
type updateDisasterRequest struct {
	Title        *string   `json:"title,omitempty" example:"Hurricane Elena Aftermath"`
	LocationName *string   `json:"locationName,omitempty" example:"Houston"`
	Description  *string   `json:"description,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
}

// pointResponse is a geographic coordinate, longitude first
type pointResponse struct {
	Lon float64 `json:"lon" example:"-90.0715"` // Longitude
	Lat float64 `json:"lat" example:"29.9511"`  // Latitude
}

// auditEntryResponse is one line of a disaster's append-only audit trail
type auditEntryResponse struct {
	Action    string    `json:"action" example:"create"` // Mutation kind that produced this entry
	ActorID   string    `json:"actorId" example:"ada"`   // Principal who performed the mutation
	Timestamp time.Time `json:"timestamp"`               // When the mutation committed
}

// reportResponse is a field report attached to a disaster
type reportResponse struct {
	ID                 string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440010"`
	SubmittedBy        string    `json:"submittedBy" example:"marco"`
	Content            string    `json:"content" example:"Water rising on Canal Street"`
	ImageURL           string    `json:"imageUrl,omitempty" example:"https://img.example.com/flood.jpg"`
	VerificationStatus string    `json:"verificationStatus" example:"pending" enum:"pending,verified,unverified"`
	VerificationNote   string    `json:"verificationNote,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// resourceResponse is a geolocated asset attached to a disaster
type resourceResponse struct {
	ID           string        `json:"id" example:"550e8400-e29b-41d4-a716-446655440020"`
	Name         string        `json:"name" example:"Astrodome Shelter"`
	LocationName string        `json:"locationName" example:"Houston"`
	Point        pointResponse `json:"point"`
	Category     string        `json:"category,omitempty" example:"shelter"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// disasterResponse is the full aggregate returned for a single disaster
type disasterResponse struct {
	ID           string             `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title        string             `json:"title" example:"Hurricane Elena Landfall"`
	LocationName string             `json:"locationName" example:"New Orleans"`
	Point        *pointResponse     `json:"point,omitempty"`
	Description  string             `json:"description,omitempty"`
	Tags         []string           `json:"tags"`
	OwnerID      string             `json:"ownerId" example:"ada"`
	CreatedAt    time.Time          `json:"createdAt"`
	Reports      []reportResponse   `json:"reports"`
	Resources    []resourceResponse `json:"resources"`
}

// disasterSummaryResponse is the compact listing shape
type disasterSummaryResponse struct {
	ID            string         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title         string         `json:"title" example:"Hurricane Elena Landfall"`
	LocationName  string         `json:"locationName" example:"New Orleans"`
	Point         *pointResponse `json:"point,omitempty"`
	Tags          []string       `json:"tags"`
	OwnerID       string         `json:"ownerId" example:"ada"`
	CreatedAt     time.Time      `json:"createdAt"`
	ReportCount   int            `json:"reportCount" example:"3"`   // Number of attached reports
	ResourceCount int            `json:"resourceCount" example:"2"` // Number of attached resources
}
