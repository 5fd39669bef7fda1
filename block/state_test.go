package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockState_Key(t *testing.T) {
	tests := []struct {
		name     string
		state    BlockState
		expected string
	}{
		{name: "no properties", state: NewBlockState("minecraft:stone"), expected: "minecraft:stone"},
		{name: "empty map", state: BlockState{Name: "minecraft:dirt", Properties: map[string]string{}}, expected: "minecraft:dirt"},
		{name: "single property", state: NewBlockState("minecraft:oak_log", "axis", "y"), expected: "minecraft:oak_log[axis=y]"},
		{
			name:     "sorted properties",
			state:    NewBlockState("minecraft:oak_stairs", "waterlogged", "false", "facing", "north", "half", "top", "shape", "straight"),
			expected: "minecraft:oak_stairs[facing=north,half=top,shape=straight,waterlogged=false]",
		},
		{name: "escaped value", state: NewBlockState("minecraft:x", "a", "1,b=2"), expected: `minecraft:x[a=1\,b\=2]`},
		{name: "escaped name", state: NewBlockState(`mod:a[b]\c`), expected: `mod:a\[b\]\\c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.state.Key())
			require.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestBlockState_KeyDistinguishesSeparators(t *testing.T) {
	pairs := [][2]BlockState{
		{NewBlockState("minecraft:x", "a", "1,b=2"), NewBlockState("minecraft:x", "a", "1", "b", "2")},
		{NewBlockState("minecraft:x", "a=b", "c"), NewBlockState("minecraft:x", "a", "b=c")},
		{NewBlockState("minecraft:x[a=1]"), NewBlockState("minecraft:x", "a", "1")},
		{NewBlockState("minecraft:x", "a", `1\`), NewBlockState("minecraft:x", "a", `1\\`)},
	}

	for _, p := range pairs {
		require.NotEqual(t, p[0].Key(), p[1].Key(), "%#v vs %#v", p[0], p[1])
	}
}

func TestNewBlockState_OddPairs(t *testing.T) {
	s := NewBlockState("minecraft:grass_block", "snowy", "false", "dangling")
	require.Equal(t, map[string]string{"snowy": "false"}, s.Properties)

	s = NewBlockState("minecraft:grass_block", "dangling")
	require.Nil(t, s.Properties)
}

func TestBlockState_Equal(t *testing.T) {
	a := NewBlockState("minecraft:oak_log", "axis", "y")
	b := NewBlockState("minecraft:oak_log", "axis", "y")
	c := NewBlockState("minecraft:oak_log", "axis", "x")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.True(t, NewBlockState("minecraft:stone").Equal(BlockState{Name: "minecraft:stone", Properties: map[string]string{}}))
}

func TestBlockState_IsAir(t *testing.T) {
	require.True(t, Air.IsAir())
	require.True(t, NewBlockState("minecraft:air").IsAir())
	require.False(t, NewBlockState("minecraft:cave_air").IsAir())
}

func TestBlockState_Clone(t *testing.T) {
	a := NewBlockState("minecraft:oak_log", "axis", "y")
	b := a.Clone()
	b.Properties["axis"] = "z"

	require.Equal(t, "y", a.Properties["axis"])
}
