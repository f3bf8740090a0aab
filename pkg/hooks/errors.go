package hooks

import (
	"fmt"
)

// Common hook errors.
var (
	// ErrHookExecution is returned when there's an error executing a hook.
	ErrHookExecution = fmt.Errorf("error executing hook")

	// ErrHookScript is returned when a hook script reports an error.
	ErrHookScript = fmt.Errorf("hook script error")

	// ErrHookLoad is returned when a hook script cannot be loaded.
	ErrHookLoad = fmt.Errorf("failed to load hook")
)
