package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor handles the execution of Tengo hook scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

var _ HookManager = (*TengoExecutor)(nil)

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script for the given event with the given context.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[hookType]
	if !exists {
		return nil // No script for this event
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "strings", "times"))

	vars := map[string]interface{}{
		"packageName":    ctx.PackageName,
		"packageVersion": ctx.PackageVersion,
		"filename":       ctx.Filename,
		"packagePath":    ctx.PackagePath,
	}
	for k, v := range ctx.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := scriptInstance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable %q to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	// Scripts report failure by assigning a non-empty err variable.
	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddHook adds or replaces the script for an event.
func (e *TengoExecutor) AddHook(hook Hook) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hook.Type] = hook.Content
	return nil
}

// RemoveHook removes the script for an event.
func (e *TengoExecutor) RemoveHook(hookType HookType) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
	return nil
}

// HasHook checks if a script is registered for an event.
func (e *TengoExecutor) HasHook(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
