package batch

// JobItemError records one failed application inside a batch check.
type JobItemError struct {
	AppID string `json:"appId"`
	Error string `json:"error"`
}

// JobReport summarizes one batch check run.
type JobReport struct {
	Name        string         `json:"name"`
	Count       int            `json:"count"`
	IDs         []string       `json:"ids"`
	FailedCount int            `json:"failedCount"`
	Errors      []JobItemError `json:"errors"`
}
