package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// FieldError describes one rejected input field. Value is never echoed back.
type FieldError struct {
	Param    string `json:"param"`
	Msg      string `json:"msg"`
	Location string `json:"location"`
}

// ValidationError carries per-field details and matches ErrInvalidArgument.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	params := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		params = append(params, f.Param)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidArgument, strings.Join(params, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func NewValidation(fields []FieldError) error {
	return &ValidationError{Fields: fields}
}

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

// Fields returns validation details when err carries them.
func Fields(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
