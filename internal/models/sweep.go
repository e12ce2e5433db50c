package models

// Sweep error codes surfaced to the triggering caller
const (
	SweepErrNoDevices      = "no_devices"
	SweepErrDispatchFailed = "dispatch_failed"
)

// SweepError is a structured error entry in a sweep result
type SweepError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SweepResult reports the outcome of one due-reminder sweep run.
// Due is how many occurrences this run owned, Attempted how many were part
// of a dispatch call, Sent how many were committed as delivered.
type SweepResult struct {
	Due       int          `json:"due"`
	Devices   int          `json:"devices"`
	Sent      int          `json:"sent"`
	Attempted int          `json:"attempted"`
	Errors    []SweepError `json:"errors"`
}
