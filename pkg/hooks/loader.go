package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/pindex/pkg/errutils"
)

// hookFileExtension is the only supported hook script extension.
const hookFileExtension = ".tengo"

// LoadHooksFromDir loads scripts named after their event from a directory:
// pre-upload.tengo, post-upload.tengo, pre-remove.tengo, post-remove.tengo.
// Files with other names or extensions are ignored.
func LoadHooksFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errutils.Wrapf(ErrHookLoad, "cannot read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != hookFileExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), hookFileExtension))
		switch hookType {
		case PreUpload, PostUpload, PreRemove, PostRemove:
		default:
			continue // Skip unknown event names
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errutils.Wrapf(ErrHookLoad, "cannot read hook file %s: %v", hookPath, err)
		}

		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return errutils.Wrapf(err, "cannot add hook %s", hookType)
		}
	}

	return nil
}
