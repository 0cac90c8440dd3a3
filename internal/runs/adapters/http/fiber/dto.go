package fiber

// CreateRunRequest represents one pipeline run
// @Description Pipeline run DTO
type CreateRunRequest struct {
	Name      string             `json:"name" example:"Detect and Locate"`
	Timestamp int64              `json:"timestamp" example:"1706605200"`
	Counts    map[string]float64 `json:"counts"`
}

type CreateRunResponse struct {
	Status string `json:"status" example:"stored"`
}

type BulkCreateRunsRequest struct {
	Runs []CreateRunRequest `json:"runs"`
}

type BulkCreateRunsResponse struct {
	Stored int `json:"stored"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_run"`
	Message string `json:"message,omitempty" example:"invalid run"`
}
