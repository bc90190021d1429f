package models

// DatasetInfo describes one dataset file available to the front end.
type DatasetInfo struct {
	Kind    string `json:"kind"` // "prices", "consumption", "solar"
	Year    int    `json:"year"`
	Variant string `json:"variant,omitempty"` // profile name or "<n>kwp"
	File    string `json:"file"`
	Count   int    `json:"count"`
}

// DatasetsResponse is the body of GET /api/v1/datasets.
type DatasetsResponse struct {
	UpdatedAt string        `json:"updated_at"`
	Datasets  []DatasetInfo `json:"datasets"`
	Count     int           `json:"count"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
