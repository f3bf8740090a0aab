// Package hooks runs operator-provided Tengo scripts around catalog
// mutations. A pre-upload or pre-remove script error rejects the mutation;
// post-event script errors are reported to the caller for logging only.
package hooks

// HookManager defines the interface for managing hook scripts.
type HookManager interface {
	// Execute runs the script for the given event, if any.
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds or replaces the script for an event.
	AddHook(hook Hook) error

	// RemoveHook removes the script for an event.
	RemoveHook(hookType HookType) error

	// HasHook checks if a script is registered for an event.
	HasHook(hookType HookType) bool
}
