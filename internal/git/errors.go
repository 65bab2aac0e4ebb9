package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOperationFailed matches every failure reported by git
	ErrOperationFailed = errors.New("git operation failed")

	// ErrNotFound indicates a ref, branch, remote or object that git reports as absent
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an attempt to create something that is already there
	ErrAlreadyExists = errors.New("already exists")
)

// ErrorKind refines an ErrOperationFailed
type ErrorKind int

const (
	KindFailed ErrorKind = iota
	KindNotFound
	KindAlreadyExists
)

// CommandError is returned by every git invocation that exits non-zero
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Kind     ErrorKind
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is makes every CommandError an ErrOperationFailed, and additionally
// ErrNotFound or ErrAlreadyExists depending on its kind.
func (e *CommandError) Is(target error) bool {
	switch target {
	case ErrOperationFailed:
		return true
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrAlreadyExists:
		return e.Kind == KindAlreadyExists
	}
	return false
}

// Stderr fragments (lowercased) git prints when something is missing
var notFoundMessages = []string{
	"not a valid ref",
	"not a valid object name",
	"not a valid branch name",
	"malformed object name",
	"unknown revision",
	"bad revision",
	"needed a single revision",
	"did not match any",
	"not something we can merge",
	"does not point to a commit",
	"no such remote",
	"no such ref",
	"couldn't find remote ref",
	"invalid reference",
	"not found",
}

var alreadyExistsMessages = []string{
	"already exists",
}

func classify(stderr string) ErrorKind {
	lower := strings.ToLower(stderr)
	for _, m := range alreadyExistsMessages {
		if strings.Contains(lower, m) {
			return KindAlreadyExists
		}
	}
	for _, m := range notFoundMessages {
		if strings.Contains(lower, m) {
			return KindNotFound
		}
	}
	return KindFailed
}

// asNotFound re-tags a failure as KindNotFound. Used for commands such as
// rev-parse --quiet that report absence only through their exit status.
func asNotFound(err error) error {
	var ce *CommandError
	if errors.As(err, &ce) {
		ce.Kind = KindNotFound
		return ce
	}
	return err
}

// IsNotFound reports whether err is an ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is an ErrAlreadyExists
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
