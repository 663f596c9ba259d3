package server

import (
	"neugym/pkg/engine/world"
)

// Ops understood by the server.
const (
	OpStep    = "step"
	OpReset   = "reset"
	OpObserve = "observe"
	OpInfo    = "info"
)

// Request is one client frame.
type Request struct {
	Op     string           `json:"op"`
	Action *world.Direction `json:"action,omitempty"`
}

// Error is the error part of a response.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Response answers a Request. State is the agent cell after the op.
type Response struct {
	Op     string       `json:"op"`
	State  *world.Coord `json:"state,omitempty"`
	Reward float64      `json:"reward"`
	Done   bool         `json:"done"`
	Time   int          `json:"time"`
	Info   string       `json:"info,omitempty"`
	Error  *Error       `json:"error,omitempty"`
}

func errorResponse(op string, err error) Response {
	return Response{Op: op, Error: &Error{Kind: world.Kind(err), Message: err.Error()}}
}
