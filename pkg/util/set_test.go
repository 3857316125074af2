package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/sluice/pkg/util"
)

func TestEmptySet(t *testing.T) {
	s := util.Set[string]{}

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("anything"))
}

func TestSetOf(t *testing.T) {
	s := util.SetOf("a", "b", "c")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Contains("d"))
}

func TestSetOfDuplicates(t *testing.T) {
	s := util.SetOf(1, 2, 1, 3, 2)

	assert.Equal(t, 3, s.Len())
}

func TestAdd(t *testing.T) {
	s := util.Set[int]{}
	s.Add(1)
	s.Add(2)
	s.Add(1)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(2))
	assert.False(t, s.IsEmpty())
}

func TestRemove(t *testing.T) {
	s := util.SetOf(1, 2, 3)
	s.Remove(2)

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(2))
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(3))
}

func TestRemoveMissing(t *testing.T) {
	s := util.SetOf("x")
	s.Remove("y")

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("x"))
}

func TestIsEmptyAfterRemove(t *testing.T) {
	s := util.Set[int]{}
	s.Add(1)
	s.Remove(1)

	assert.True(t, s.IsEmpty())
}
