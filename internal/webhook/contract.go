package webhook

type DisableResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Output  string `json:"output"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
