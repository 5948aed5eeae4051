package core

import (
	"errors"
	"fmt"
)

var (
	ErrContractViolation       = errors.New("contract violation")
	ErrContextAlreadyCreated   = errors.New("graphics context already created")
	ErrInstanceCreation        = errors.New("failed to create graphics instance")
	ErrSurfaceCreation         = errors.New("failed to create presentation surface")
	ErrNoCompatibleDevice      = errors.New("no compatible physical device")
	ErrValidationLayersMissing = errors.New("required validation layers are missing")
	ErrUnknownBackend          = errors.New("unknown graphics backend")
)

// Assert panics with an error wrapping ErrContractViolation when cond is false.
// It guards programming errors such as double-mapping a buffer or using a
// released handle; these are never recoverable at runtime.
func Assert(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	err := fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
	LogError(err.Error())
	panic(err)
}
