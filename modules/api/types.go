package api

// ErrorResponse is the error payload both HTTP surfaces return.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginRequest carries the board password from the client gate.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse acknowledges a successful gate check.
type LoginResponse struct {
	OK bool `json:"ok"`
}

// DeleteResponse is the programmatic delete acknowledgement.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// MoveRequest carries the target column of a drag-and-drop move.
type MoveRequest struct {
	Status string `json:"status"`
}
