package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/sluice/pkg/api"
)

func TestSet(t *testing.T) {
	original := api.Args{
		"existing": "value",
	}

	result := original.Set("new_key", "new_value")

	assert.Equal(t, "new_value", result["new_key"])
	assert.Equal(t, "value", result["existing"])
	assert.NotContains(t,
		original, "new_key", "Set should not modify original Args",
	)
}

func TestSetNil(t *testing.T) {
	var args api.Args

	result := args.Set("key", "value")

	assert.Equal(t, "value", result["key"])
	assert.Len(t, result, 1)
}

func TestGetString(t *testing.T) {
	args := api.Args{
		"string_key": "test_value",
		"int_key":    42,
		"nil_key":    nil,
	}

	t.Run("existing_string", func(t *testing.T) {
		assert.Equal(t, "test_value", args.GetString("string_key", "default"))
	})

	t.Run("non_existent_key", func(t *testing.T) {
		assert.Equal(t, "fallback", args.GetString("nonexistent", "fallback"))
	})

	t.Run("wrong_type", func(t *testing.T) {
		assert.Equal(t, "default", args.GetString("int_key", "default"))
	})

	t.Run("nil_value", func(t *testing.T) {
		assert.Equal(t, "default", args.GetString("nil_key", "default"))
	})
}

func TestGetBool(t *testing.T) {
	args := api.Args{
		"bool_true":  true,
		"bool_false": false,
		"string_key": "not_a_bool",
	}

	assert.True(t, args.GetBool("bool_true", false))
	assert.False(t, args.GetBool("bool_false", true))
	assert.True(t, args.GetBool("string_key", true))
	assert.False(t, args.GetBool("missing", false))
}

func TestGetInt(t *testing.T) {
	args := api.Args{
		"int_key":    42,
		"float_key":  float64(7),
		"string_key": "not_an_int",
	}

	assert.Equal(t, 42, args.GetInt("int_key", 0))
	assert.Equal(t, 7, args.GetInt("float_key", 0))
	assert.Equal(t, -1, args.GetInt("string_key", -1))
	assert.Equal(t, 99, args.GetInt("missing", 99))
}

func TestGetArgs(t *testing.T) {
	args := api.Args{
		"nested": api.Args{"inner": "value"},
		"decoded": map[string]any{
			"count": float64(3),
		},
		"scalar": "not_a_map",
	}

	t.Run("nested_args", func(t *testing.T) {
		nested := args.GetArgs("nested")
		assert.Equal(t, "value", nested.GetString("inner", ""))
	})

	t.Run("json_decoded_map", func(t *testing.T) {
		decoded := args.GetArgs("decoded")
		assert.Equal(t, 3, decoded.GetInt("count", 0))
	})

	t.Run("wrong_type", func(t *testing.T) {
		assert.Nil(t, args.GetArgs("scalar"))
	})

	t.Run("missing", func(t *testing.T) {
		assert.Nil(t, args.GetArgs("missing"))
	})
}
