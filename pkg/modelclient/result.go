package modelclient

import "fmt"

// ErrorPrefix starts the textual form of every model service failure.
const ErrorPrefix = "Error connecting to Ollama: "

// ErrorKind tags a failed Result.
type ErrorKind int

const (
	// KindModelService covers every failure while contacting or receiving
	// from the model endpoint: refused connections, HTTP errors, malformed
	// replies, unknown models and cancelled calls.
	KindModelService ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case KindModelService:
		return "model_service"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the tagged failure carried by a Result.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return ErrorPrefix + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is the outcome of one Generate call: either the reply text or a
// tagged error.
type Result struct {
	Text string
	Err  *Error
}

// OK reports whether the call produced a reply.
func (r Result) OK() bool {
	return r.Err == nil
}

// String returns the reply, or the error rendered as
// "Error connecting to Ollama: <message>".
func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Text
}
