package feeds

import "time"

// socialPostResponse is one post from the social feed provider
type socialPostResponse struct {
	ID       string    `json:"id" example:"post-00a1b2c3-0"`
	Author   string    `json:"author" example:"@stormwatcher_gulf"`
	Text     string    `json:"text" example:"Flooding reported near the levee"`
	PostedAt time.Time `json:"postedAt"`
}

// socialSearchResponse is the cached answer to a social feed query
type socialSearchResponse struct {
	Found bool                 `json:"found" example:"true"` // False when the provider had nothing for this query
	Posts []socialPostResponse `json:"posts"`
}

// bulletinResponse is one official advisory
type bulletinResponse struct {
	ID       string    `json:"id" example:"nws-0"`
	Source   string    `json:"source" example:"nws"`
	Title    string    `json:"title" example:"Flash Flood Warning"`
	Body     string    `json:"body"`
	IssuedAt time.Time `json:"issuedAt"`
}

// bulletinsResponse is the cached answer to an official-updates query
type bulletinsResponse struct {
	Found     bool               `json:"found" example:"true"` // False for sources the provider does not recognize
	Bulletins []bulletinResponse `json:"bulletins"`
}

// geocodeRequest asks the service to pull a place name out of free text and
// resolve it
type geocodeRequest struct {
	Text string `json:"text" example:"Levee breach reported in New Orleans ninth ward" minLength:"1"` // Free text to scan for a known place name
}

// pointResponse is a geographic coordinate, longitude first
type pointResponse struct {
	Lon float64 `json:"lon" example:"-90.0715"` // Longitude
	Lat float64 `json:"lat" example:"29.9511"`  // Latitude
}

// geocodeResponse carries the extracted place name and its coordinates
type geocodeResponse struct {
	Found    bool           `json:"found" example:"true"`                     // False when the text mentions no recognizable place
	Location string         `json:"location,omitempty" example:"New Orleans"` // The extracted place name
	Point    *pointResponse `json:"point,omitempty"`                          // Resolved coordinates, absent when geocoding had no data
}
