// Package block models block states and interns them to compact numeric ids.
//
// A block state is a namespaced block name plus an optional set of string
// properties, for example "minecraft:oak_log" with axis=y. Chunk sections store
// one StateID per block; a Registry maps ids back to states when sections are
// written as palettes.
package block

import (
	"maps"
	"slices"
	"strings"
)

// StateID is the in-memory id of an interned block state.
type StateID uint32

// AirID is the id every Registry assigns to Air.
const AirID StateID = 0

// Air is the empty block state. Sections default to it.
var Air = BlockState{Name: "minecraft:air"}

// BlockState is a block name with its property map. A nil and an empty property
// map describe the same state.
type BlockState struct {
	Name       string
	Properties map[string]string
}

// NewBlockState creates a block state from a name and alternating key/value
// property pairs. A trailing key without a value is ignored.
func NewBlockState(name string, kv ...string) BlockState {
	s := BlockState{Name: name}
	if len(kv) < 2 {
		return s
	}

	s.Properties = make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		s.Properties[kv[i]] = kv[i+1]
	}

	return s
}

// Key returns the canonical text form of the state: the name followed by the
// properties sorted by key, e.g. "minecraft:oak_log[axis=y]".
//
// Backslash, '[', ']', ',' and '=' inside the name, keys and values are
// escaped with a backslash, so distinct states never share a key.
func (s BlockState) Key() string {
	if len(s.Properties) == 0 {
		return escapeKey(s.Name)
	}

	keys := slices.Sorted(maps.Keys(s.Properties))

	var sb strings.Builder
	sb.WriteString(escapeKey(s.Name))
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(escapeKey(k))
		sb.WriteByte('=')
		sb.WriteString(escapeKey(s.Properties[k]))
	}
	sb.WriteByte(']')

	return sb.String()
}

const keySeparators = `\[],=`

func escapeKey(s string) string {
	if !strings.ContainsAny(s, keySeparators) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(keySeparators, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (s BlockState) String() string {
	return s.Key()
}

// Equal reports whether two states have the same name and properties.
func (s BlockState) Equal(other BlockState) bool {
	return s.Name == other.Name && maps.Equal(s.Properties, other.Properties)
}

// IsAir reports whether the state is Air.
func (s BlockState) IsAir() bool {
	return s.Name == Air.Name && len(s.Properties) == 0
}

// Clone returns a copy that shares no memory with s.
func (s BlockState) Clone() BlockState {
	return BlockState{Name: s.Name, Properties: maps.Clone(s.Properties)}
}
