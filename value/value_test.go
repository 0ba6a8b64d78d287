package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SetGetDelete(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Set(&Integer{Value: 1}, &String{Value: "one"}))
	require.NoError(t, m.Set(&String{Value: "two"}, &Integer{Value: 2}))

	v, ok := m.Get(&Integer{Value: 1})
	require.True(t, ok)
	assert.Equal(t, "one", v.(*String).Value)

	assert.Equal(t, 2, m.Len())
	m.Delete(&Integer{Value: 1})
	assert.Equal(t, 1, m.Len())
	_, ok = m.Get(&Integer{Value: 1})
	assert.False(t, ok)
}

func TestMap_RejectsUnhashableKey(t *testing.T) {
	m := NewMap()
	err := m.Set(&Array{Elements: []Value{&Integer{Value: 1}}}, &Unit{})
	assert.Error(t, err)
}

func TestMap_TupleKeyHashable(t *testing.T) {
	m := NewMap()
	key := &Tuple{Elements: []Value{&Integer{Value: 1}, &String{Value: "a"}}}
	require.NoError(t, m.Set(key, &Boolean{Value: true}))
	v, ok := m.Get(&Tuple{Elements: []Value{&Integer{Value: 1}, &String{Value: "a"}}})
	require.True(t, ok)
	assert.True(t, v.(*Boolean).Value)
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(&Integer{Value: 1}))
	assert.False(t, Truthy(&Integer{Value: 0}))
	assert.False(t, Truthy(&String{Value: ""}))
	assert.True(t, Truthy(&String{Value: "x"}))
	assert.False(t, Truthy(&Unit{}))
	assert.False(t, Truthy(&Array{}))
}

func TestEqual_NumericPromotion(t *testing.T) {
	assert.True(t, Equal(&Integer{Value: 3}, &Float{Value: 3.0}))
	assert.False(t, Equal(&Integer{Value: 3}, &Float{Value: 3.1}))
	assert.True(t, Equal(&String{Value: "a"}, &String{Value: "a"}))
	assert.False(t, Equal(&String{Value: "a"}, &Integer{Value: 1}))
}

func TestEqual_Arrays(t *testing.T) {
	a := &Array{Elements: []Value{&Integer{Value: 1}, &Integer{Value: 2}}}
	b := &Array{Elements: []Value{&Integer{Value: 1}, &Integer{Value: 2}}}
	c := &Array{Elements: []Value{&Integer{Value: 1}, &Integer{Value: 3}}}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}
