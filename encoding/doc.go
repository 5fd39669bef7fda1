// Package encoding implements the paletted bit-packing used for block-state storage
// in chunk sections.
//
// A section holds 4096 block states. Rather than storing each state, a section stores
// a palette of its distinct states and, for every block, the palette index packed into
// 64-bit words:
//
//	bits per index = max(4, ceil(log2(len(palette))))
//	indices per word = 64 / bits
//
// Indices are packed low bits first and never span two words, so the high bits of each
// word may be unused. A 17-entry palette uses 5-bit indices, 12 per word, and 342 words
// for a full section.
//
// # Usage
//
//	palette, words := encoding.EncodePalette(states)
//	states, err := encoding.DecodePalette(palette, words, 4096)
//
// A palette with empty words describes a uniform section: every block takes palette[0].
//
// Decoding tolerates streams packed with a wider index than the palette needs, inferring
// the width from the word count. Streams with too few words or an index outside the
// palette fail with errs.ErrInvalidPalette.
package encoding
