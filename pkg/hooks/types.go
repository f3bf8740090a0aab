package hooks

// HookType represents the server event a hook script is attached to.
type HookType string

// Supported hook events.
const (
	PreUpload  HookType = "pre-upload"
	PostUpload HookType = "post-upload"
	PreRemove  HookType = "pre-remove"
	PostRemove HookType = "post-remove"
)

// Hook represents a hook script with its event and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hook scripts.
type HookContext struct {
	PackageName    string
	PackageVersion string
	Filename       string
	PackagePath    string
	Vars           map[string]interface{}
}
