package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiron-lang/chiron/value"
)

func TestDefineVar_ScopedToCurrent(t *testing.T) {
	root := New(nil)
	root.DefineVar("x", &value.Integer{Value: 1}, false)

	child := New(root)
	child.DefineVar("x", &value.Integer{Value: 2}, false)

	v, ok := child.GetVar("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.(*value.Integer).Value)

	v, ok = root.GetVar("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*value.Integer).Value)
}

func TestGetVar_WalksParentChain(t *testing.T) {
	root := New(nil)
	root.DefineVar("x", &value.Integer{Value: 10}, false)
	child := New(root)

	v, ok := child.GetVar("x")
	require.True(t, ok)
	assert.Equal(t, int64(10), v.(*value.Integer).Value)
}

func TestGetVar_Undefined(t *testing.T) {
	root := New(nil)
	_, ok := root.GetVar("missing")
	assert.False(t, ok)
}

func TestSetVar_UpdatesDefiningScope(t *testing.T) {
	root := New(nil)
	root.DefineVar("x", &value.Integer{Value: 1}, false)
	child := New(root)

	err := child.SetVar("x", &value.Integer{Value: 99})
	require.NoError(t, err)

	v, _ := root.GetVar("x")
	assert.Equal(t, int64(99), v.(*value.Integer).Value)
	_, ok := child.variables["x"]
	assert.False(t, ok, "SetVar must never create a new binding in the calling scope")
}

func TestSetVar_UndefinedIsError(t *testing.T) {
	root := New(nil)
	err := root.SetVar("ghost", &value.Integer{Value: 1})
	assert.Error(t, err)
}

func TestSetVar_RejectsConst(t *testing.T) {
	root := New(nil)
	root.DefineVar("PI", &value.Float{Value: 3.14}, true)
	err := root.SetVar("PI", &value.Float{Value: 3.0})
	assert.Error(t, err)
	var constErr *AssignConstError
	assert.ErrorAs(t, err, &constErr)
}

func TestFuncAndVarNamespacesAreIndependent(t *testing.T) {
	root := New(nil)
	root.DefineVar("add", &value.Integer{Value: 5}, false)
	root.DefineFunc("add", &value.Unit{})

	v, ok := root.GetVar("add")
	require.True(t, ok)
	assert.Equal(t, value.IntegerType, v.GetType())

	f, ok := root.GetFunc("add")
	require.True(t, ok)
	assert.Equal(t, value.UnitType, f.GetType())
}

func TestModuleRebindingReplacesAlias(t *testing.T) {
	root := New(nil)
	first := &value.String{Value: "first"}
	second := &value.String{Value: "second"}
	root.DefineModule("m", first)
	root.DefineModule("m", second)

	v, ok := root.GetModule("m")
	require.True(t, ok)
	assert.Same(t, second, v)
}
