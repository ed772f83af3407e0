package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

func TestBuildMethodCounts(t *testing.T) {
	method, err := BuildMethod(model.RawMethod{
		Name:        "  deployVirtualMachine ",
		Description: " Creates and automatically starts a virtual machine. ",
		IsAsync:     true,
		Since:       "3.0.0",
		Related:     "startVirtualMachine, stopVirtualMachine",
		Params: []model.RawParam{
			{Name: "serviceofferingid", Description: "the ID of the service offering", Required: true, Type: "uuid"},
			{Name: "zoneid", Description: "availability zone", Required: "true", Type: "uuid"},
			{Name: "name", Description: "host name", Required: false, Type: "string", Length: 255.0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "deployVirtualMachine", method.Name)
	assert.Equal(t, "Creates and automatically starts a virtual machine.", method.Description)
	assert.Equal(t, 2, method.RequiredCount)
	assert.Equal(t, 1, method.OptionalCount)
	assert.True(t, method.Async)
	assert.Equal(t, "3.0.0", method.Since)
	assert.Equal(t, []string{"startVirtualMachine", "stopVirtualMachine"}, method.Related)
	assert.Equal(t, "deployVirtualMachineResponse", method.ResponseClass)

	require.Len(t, method.Params, 3)
	assert.Equal(t, []string{"serviceofferingid", "zoneid", "name"},
		[]string{method.Params[0].Name, method.Params[1].Name, method.Params[2].Name})
	assert.Equal(t, "string", method.Params[0].Type)
	assert.Equal(t, 255, method.Params[2].Length)

	assert.Len(t, method.RequiredParams(), 2)
	assert.Len(t, method.OptionalParams(), 1)
}

func TestBuildMethodDefaultDescriptions(t *testing.T) {
	method, err := BuildMethod(model.RawMethod{
		Name: "listZones",
		Params: []model.RawParam{
			{Name: "page", Description: ""},
			{Name: "pagesize", Description: "  "},
			{Name: "keyword", Description: ""},
			{Name: "id"},
			{Name: "page", Description: "custom page text"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "the page number of the result set", method.Params[0].Description)
	assert.Equal(t, "the number of entries per page", method.Params[1].Description)
	assert.Equal(t, "", method.Params[2].Description)
	assert.Equal(t, "", method.Params[3].Description)
	assert.Equal(t, "custom page text", method.Params[4].Description)
}

func TestNormalizeFlag(t *testing.T) {
	tests := []struct {
		input    any
		expected bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"", false},
		{1.0, true},
		{0.0, false},
		{2, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeFlag(tt.input), "normalizeFlag(%#v)", tt.input)
	}
}

func TestBuildMethodMalformed(t *testing.T) {
	t.Run("missing method name", func(t *testing.T) {
		_, err := BuildMethod(model.RawMethod{Description: "x"})

		var malformed *model.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "name", malformed.Path)
	})

	t.Run("missing param name", func(t *testing.T) {
		_, err := BuildMethod(model.RawMethod{
			Name:   "listHosts",
			Params: []model.RawParam{{Name: "zoneid"}, {Description: "nameless"}},
		})

		var malformed *model.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "listHosts", malformed.Method)
		assert.Equal(t, "params[1].name", malformed.Path)
	})

	t.Run("non-string description", func(t *testing.T) {
		_, err := BuildMethod(model.RawMethod{Name: "listHosts", Description: 4.0})

		var malformed *model.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "description", malformed.Path)
	})
}
