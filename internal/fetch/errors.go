package fetch

import "fmt"

// DependencyError reports a required external executable that could not
// be found on PATH. It is returned before any network or filesystem
// activity happens.
type DependencyError struct {
	Name string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependency %q, please install it and try again", e.Name)
}

// WorkerExitError reports a non-zero exit status from the external
// download worker.
type WorkerExitError struct {
	Code int
}

func (e *WorkerExitError) Error() string {
	return fmt.Sprintf("download worker exited with status %d", e.Code)
}
