package domain

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	DatasetsAvailable int    `json:"datasets_available"`
	DatasetsTotal     int    `json:"datasets_total"`
}
