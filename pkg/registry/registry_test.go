package registry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/common/validation"
)

func object() validation.JSONSchema {
	return validation.JSONSchema{Type: "object", Properties: map[string]validation.Property{}}
}

func TestFind(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{TaskType: "search-jobs", Category: "jobs", InputSchema: object()},
	}}

	a, err := reg.Find("search-jobs")
	require.NoError(t, err)
	assert.Equal(t, "jobs", a.Category)

	_, err = reg.Find("move-candidate")
	assert.True(t, errors.Is(err, ErrUnknownActivity))
}

func TestValidate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{TaskType: "search-jobs", Category: "jobs", InputSchema: object()},
		{TaskType: "search-jobs", Category: "jobs", InputSchema: object()},
		{TaskType: "move-candidate", InputSchema: validation.JSONSchema{}},
	}}

	errs := reg.Validate()
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "duplicate")
	assert.Contains(t, errs[1].Error(), "category")
	assert.Contains(t, errs[2].Error(), "object")
}

func TestSaveOrdersActivities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	reg := &ActivityRegistry{Version: "1", Activities: []Activity{
		{TaskType: "toggle-favorite", Category: "pipeline", InputSchema: object()},
		{TaskType: "search-jobs", Category: "jobs", InputSchema: object()},
		{TaskType: "move-candidate", Category: "pipeline", InputSchema: object()},
	}}
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	var order []string
	for _, a := range loaded.Activities {
		order = append(order, a.TaskType)
	}
	assert.Equal(t, []string{"search-jobs", "move-candidate", "toggle-favorite"}, order)
	assert.Empty(t, loaded.Validate())
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
