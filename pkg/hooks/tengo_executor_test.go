package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteNoScriptIsNoop(t *testing.T) {
	e := NewTengoExecutor()
	assert.NoError(t, e.Execute(PreUpload, HookContext{}))
}

func TestExecuteRunsScript(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		Type:    PreUpload,
		Content: `fmt := import("fmt"); fmt.println("uploading ", filename)`,
	}))

	err := e.Execute(PreUpload, HookContext{
		PackageName:    "mypkg",
		PackageVersion: "1.0",
		Filename:       "mypkg-1.0.tar.gz",
	})
	assert.NoError(t, err)
}

func TestExecuteScriptSeesContext(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		Type:    PostUpload,
		Content: `err := ""; if packageName != "mypkg" { err = "wrong name" }`,
	}))

	assert.NoError(t, e.Execute(PostUpload, HookContext{PackageName: "mypkg"}))

	err := e.Execute(PostUpload, HookContext{PackageName: "other"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHookScript)
}

func TestExecuteScriptErrVariableRejects(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		Type:    PreRemove,
		Content: `err := "removal is not allowed"`,
	}))

	err := e.Execute(PreRemove, HookContext{PackageName: "mypkg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHookScript)
	assert.Contains(t, err.Error(), "removal is not allowed")
}

func TestExecuteCompileErrorReported(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{Type: PreUpload, Content: `this is not tengo ((`}))

	err := e.Execute(PreUpload, HookContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHookExecution)
}

func TestExtraVars(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		Type:    PostRemove,
		Content: `err := ""; if reason != "cleanup" { err = "unexpected reason" }`,
	}))

	err := e.Execute(PostRemove, HookContext{
		Vars: map[string]interface{}{"reason": "cleanup"},
	})
	assert.NoError(t, err)
}

func TestAddRemoveHasHook(t *testing.T) {
	e := NewTengoExecutor()
	assert.False(t, e.HasHook(PreUpload))

	require.NoError(t, e.AddHook(Hook{Type: PreUpload, Content: `x := 1`}))
	assert.True(t, e.HasHook(PreUpload))

	require.NoError(t, e.RemoveHook(PreUpload))
	assert.False(t, e.HasHook(PreUpload))
}

func TestLoadHooksFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-upload.tengo"), []byte(`x := 1`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-remove.tengo"), []byte(`x := 2`), 0o644))
	// Ignored: wrong extension, unknown event name.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-upload.txt"), []byte(`x`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "on-boot.tengo"), []byte(`x`), 0o644))

	e := NewTengoExecutor()
	require.NoError(t, LoadHooksFromDir(e, dir))

	assert.True(t, e.HasHook(PreUpload))
	assert.True(t, e.HasHook(PostRemove))
	assert.False(t, e.HasHook(PostUpload))
	assert.False(t, e.HasHook(HookType("on-boot")))
}

func TestLoadHooksFromMissingDir(t *testing.T) {
	e := NewTengoExecutor()
	err := LoadHooksFromDir(e, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrHookLoad)
}
