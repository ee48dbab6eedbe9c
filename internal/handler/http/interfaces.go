package http

import "net/http"

//go:generate mockgen -source=interfaces.go -destination=../../mock/error_handler_mock.go -package=mock

// ErrorHandler is a stage of the error pipeline. A stage either forwards
// the error to the next stage or, when it is the terminal one, writes the
// client response.
type ErrorHandler interface {
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}
