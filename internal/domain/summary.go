package domain

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SummaryResult is the ordered bullet sequence produced for a document.
// When the upstream call fails the sequence holds a single error bullet and
// UpstreamError is set.
type SummaryResult struct {
	Bullets       []string
	UpstreamError bool
}

// SummaryResponse is the JSON payload returned on the happy path.
type SummaryResponse struct {
	Status        string   `json:"status"`
	Summary       []string `json:"summary"`
	UpstreamError bool     `json:"upstream_error"`
}

// ErrorResponse is the JSON payload returned for rejected requests.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
