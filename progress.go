package emrtd

import "github.com/skythen/emrtd/lds"

// Stage identifies where in the read the orchestrator currently is,
// for a host UI to render. Reading carries the Data Group being
// fetched and a completion percentage; Error carries the error that
// ended the read.
type Stage int

const (
	StageRequestPresent Stage = iota
	StageAuthenticating
	StageReading
	StageSuccess
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageRequestPresent:
		return "request_present"
	case StageAuthenticating:
		return "authenticating"
	case StageReading:
		return "reading"
	case StageSuccess:
		return "success"
	case StageError:
		return "error"
	default:
		return "unknown"
	}
}

// StageEvent is what StageFunc receives: the stage, and for Reading
// the Data Group being fetched, for Error the error that ended the
// read.
type StageEvent struct {
	Stage Stage
	DGTag lds.Tag
	Err   error
}

// StageFunc is the host's stage-transition callback.
type StageFunc func(StageEvent)

// ProgressFunc is the host's per-Data-Group progress callback,
// reported as each READ BINARY chunk lands.
type ProgressFunc func(tag lds.Tag, percent int)

// noopStage and noopProgress discard events for callers that don't
// supply a callback. Rendering is the host's responsibility; the
// orchestrator only reports transitions.
func noopStage(StageEvent)            {}
func noopProgress(lds.Tag, int) {}
