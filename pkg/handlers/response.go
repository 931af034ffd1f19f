package handlers

// successResp is the envelope every mutating and lookup endpoint answers
// with; the console keys off the success flag.
type successResp struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
