package cvopt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned by callers that validate pipeline inputs before running it.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateInputs fails fast when either text is blank. The pipeline itself accepts
// empty text; this is for callers that treat it as a usage error.
func ValidateInputs(resumeText, jdText string) error {
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Errorf("%w: resume text is empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(jdText) == "" {
		return fmt.Errorf("%w: job description text is empty", ErrInvalidArgument)
	}
	return nil
}

// InvalidArgumentf formats a usage error. It matches ErrInvalidArgument under
// errors.Is while its message stays exactly the formatted text.
func InvalidArgumentf(format string, args ...any) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}

type argumentError struct{ msg string }

func (e *argumentError) Error() string { return e.msg }

func (e *argumentError) Unwrap() error { return ErrInvalidArgument }
