package tool

import "fmt"

// ErrToolAlreadyRegistered is returned when registering a duplicate name.
type ErrToolAlreadyRegistered struct {
	Name string
}

func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}

// ErrInvalidTool is returned when a registration is structurally unusable.
type ErrInvalidTool struct {
	Reason string
}

func (e *ErrInvalidTool) Error() string {
	return fmt.Sprintf("tool: invalid registration: %s", e.Reason)
}
