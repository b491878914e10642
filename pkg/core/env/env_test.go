package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/iam/pkg/core/env"
	"github.com/agenthands/iam/pkg/core/value"
)

func TestEnvLastWriteWins(t *testing.T) {
	e := env.New()

	_, ok := e.Get("x")
	assert.False(t, ok)

	e.Set("x", value.Int(1))
	e.Set("x", value.Text("one"))

	v, ok := e.Get("x")
	assert.True(t, ok)
	assert.Equal(t, value.Text("one"), v)
	assert.Equal(t, 1, e.Len())
}

func TestEnvRedeclareArray(t *testing.T) {
	e := env.New()
	e.Set("a", value.NewArray(3))
	e.Set("a", value.NewArray(1))

	v, _ := e.Get("a")
	assert.Equal(t, "[0]", v.String())
}

func TestEnvNamesSorted(t *testing.T) {
	e := env.New()
	e.Set("b", value.Int(2))
	e.Set("a", value.Int(1))
	assert.Equal(t, []string{"a", "b"}, e.Names())
	assert.Contains(t, e.String(), "2 bindings")
}
