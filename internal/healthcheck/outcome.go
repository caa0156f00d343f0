// Package healthcheck implements the probe fan-out at the heart of the
// bot: issuing one bounded-timeout HTTP probe per visible node,
// classifying each result, and rendering the aggregate into a single
// chat reply.
package healthcheck

// Outcome classifies the result of probing one node. Exactly one branch
// is ever populated: either the remote replied with an HTTP status, or
// the request never completed and a failure reason is recorded. Build
// values only through Responded and Failed.
type Outcome struct {
	responded  bool
	statusCode int
	reason     string
}

// Responded returns the Outcome for a completed HTTP exchange. The
// status code is carried verbatim; interpreting it is the renderer's
// job, not the prober's.
func Responded(statusCode int) Outcome {
	return Outcome{responded: true, statusCode: statusCode}
}

// Failed returns the Outcome for a probe that never received a
// response (connect failure, timeout, interrupted I/O).
func Failed(reason string) Outcome {
	return Outcome{reason: reason}
}

// StatusCode returns the HTTP status and true when the node responded.
func (o Outcome) StatusCode() (int, bool) {
	if !o.responded {
		return 0, false
	}
	return o.statusCode, true
}

// FailureReason returns the failure message and true when the probe
// never completed.
func (o Outcome) FailureReason() (string, bool) {
	if o.responded {
		return "", false
	}
	return o.reason, true
}
