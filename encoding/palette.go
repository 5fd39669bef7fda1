package encoding

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/anvil/errs"
)

const (
	// MinBitsPerIndex is the narrowest index width used for block-state palettes.
	MinBitsPerIndex = 4
	// MaxBitsPerIndex is the widest index width a word can hold.
	MaxBitsPerIndex = 32

	wordBits = 64
)

// BitsPerIndex returns the packed index width for a palette of paletteLen entries:
// max(4, ceil(log2(paletteLen))).
func BitsPerIndex(paletteLen int) int {
	if paletteLen <= 1 {
		return MinBitsPerIndex
	}

	return max(MinBitsPerIndex, bits.Len(uint(paletteLen-1)))
}

// IndicesPerWord returns how many indices of the given width fit in one 64-bit word.
func IndicesPerWord(bitsPerIndex int) int {
	return wordBits / bitsPerIndex
}

// PackedWordCount returns the number of words needed to pack count indices.
func PackedWordCount(count, bitsPerIndex int) int {
	perWord := IndicesPerWord(bitsPerIndex)

	return (count + perWord - 1) / perWord
}

// EncodePalette deduplicates values into a palette and packs the palette index of
// every value into 64-bit words.
//
// The palette lists distinct values in order of first occurrence. Indices are
// packed low bits first, BitsPerIndex(len(palette)) bits each. An index never
// spans two words; unused high bits of a word are zero.
//
// Parameters:
//   - values: The values to encode, typically the 4096 block states of a section
//
// Returns:
//   - palette: Distinct values in first-occurrence order
//   - words: Packed indices, PackedWordCount(len(values), bits) words
func EncodePalette[T comparable](values []T) (palette []T, words []uint64) {
	ids := make(map[T]int)
	indices := make([]int, len(values))

	for i, v := range values {
		id, ok := ids[v]
		if !ok {
			id = len(palette)
			ids[v] = id
			palette = append(palette, v)
		}
		indices[i] = id
	}

	return palette, PackIndices(indices, BitsPerIndex(len(palette)))
}

// PackIndices packs indices into words, bitsPerIndex bits each, low bits first.
// Each index must fit in bitsPerIndex bits.
func PackIndices(indices []int, bitsPerIndex int) []uint64 {
	words := make([]uint64, 0, PackedWordCount(len(indices), bitsPerIndex))

	var (
		current uint64
		used    int
	)
	for _, idx := range indices {
		if used+bitsPerIndex > wordBits {
			words = append(words, current)
			current, used = 0, 0
		}
		current |= uint64(idx) << used
		used += bitsPerIndex
	}
	if used > 0 {
		words = append(words, current)
	}

	return words
}

// UnpackIndices reads count indices of bitsPerIndex bits from words.
// Decoding stops at count even when the last word is only partly used.
func UnpackIndices(words []uint64, bitsPerIndex, count int) ([]int, error) {
	if bitsPerIndex < 1 || bitsPerIndex > MaxBitsPerIndex {
		return nil, fmt.Errorf("%w: index width %d", errs.ErrInvalidPalette, bitsPerIndex)
	}
	if need := PackedWordCount(count, bitsPerIndex); len(words) < need {
		return nil, fmt.Errorf("%w: %d packed words, need %d", errs.ErrInvalidPalette, len(words), need)
	}

	perWord := IndicesPerWord(bitsPerIndex)
	mask := uint64(1)<<bitsPerIndex - 1
	indices := make([]int, count)

	i := 0
	for _, w := range words {
		for j := 0; j < perWord && i < count; j++ {
			indices[i] = int((w >> (j * bitsPerIndex)) & mask)
			i++
		}
		if i == count {
			break
		}
	}

	return indices, nil
}

// DecodePalette is the inverse of EncodePalette. It rebuilds count values from a
// palette and its packed indices.
//
// An empty words slice with a non-empty palette denotes a uniform section: every
// value is palette[0].
//
// Returns:
//   - []T: count decoded values
//   - error: ErrInvalidPalette for an empty palette, too few words, or an index
//     outside the palette
func DecodePalette[T any](palette []T, words []uint64, count int) ([]T, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", errs.ErrInvalidPalette)
	}

	out := make([]T, count)
	if len(words) == 0 {
		for i := range out {
			out[i] = palette[0]
		}

		return out, nil
	}

	indices, err := UnpackIndices(words, decodeWidth(len(palette), len(words), count), count)
	if err != nil {
		return nil, err
	}

	for i, idx := range indices {
		if idx >= len(palette) {
			return nil, fmt.Errorf("%w: index %d at position %d, palette has %d entries",
				errs.ErrInvalidPalette, idx, i, len(palette))
		}
		out[i] = palette[idx]
	}

	return out, nil
}

// decodeWidth returns the index width of a packed stream. Streams written by
// other software may use a wider index than the palette requires; the width is
// then inferred from the word count.
func decodeWidth(paletteLen, wordCount, count int) int {
	width := BitsPerIndex(paletteLen)
	if PackedWordCount(count, width) == wordCount || count == 0 {
		return width
	}

	perWord := (count + wordCount - 1) / wordCount
	inferred := wordBits / perWord
	if inferred > width && inferred <= MaxBitsPerIndex && PackedWordCount(count, inferred) == wordCount {
		return inferred
	}

	// too few words is reported by UnpackIndices; surplus words are ignored
	return width
}
