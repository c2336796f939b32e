package health

type healthResponse struct {
	Status      string `json:"status" example:"ok"`                      // Service status
	Timestamp   string `json:"timestamp" example:"2025-03-01T12:00:00Z"` // Current server time
	Uptime      string `json:"uptime" example:"1h32m10s"`                // Time since the process started
	Subscribers int    `json:"subscribers" example:"4"`                  // Connected stream observers
}
