package encoding

import (
	"fmt"
	"testing"
)

func benchmarkSection(distinct int) []uint16 {
	values := make([]uint16, sectionVolume)
	for i := range values {
		values[i] = uint16((i*7 + i/16) % distinct)
	}

	return values
}

func BenchmarkEncodePalette(b *testing.B) {
	for _, distinct := range []int{1, 16, 64, 512} {
		b.Run(fmt.Sprintf("distinct=%d", distinct), func(b *testing.B) {
			values := benchmarkSection(distinct)

			b.ReportAllocs()
			for b.Loop() {
				EncodePalette(values)
			}
		})
	}
}

func BenchmarkDecodePalette(b *testing.B) {
	for _, distinct := range []int{1, 16, 64, 512} {
		b.Run(fmt.Sprintf("distinct=%d", distinct), func(b *testing.B) {
			palette, words := EncodePalette(benchmarkSection(distinct))

			b.ReportAllocs()
			for b.Loop() {
				if _, err := DecodePalette(palette, words, sectionVolume); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
