package constants

import "net/http"

// CodedError is an error that knows which HTTP status it should be rendered with.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound       = NewCodedError(http.StatusNotFound, "not found in db")
	ErrUnsupportedLevel = NewCodedError(http.StatusBadRequest, "territory level is not supported for this domain")
	ErrInvalidYearRange = NewCodedError(http.StatusBadRequest, "start_year must not be greater than end_year")
	ErrUnauthorized     = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrImportDisabled   = NewCodedError(http.StatusNotFound, "import requires data.source=postgres")
)
