package format

import "strings"

type (
	CompressionType    uint8
	ArchiveCompression uint8
	ChunkStatus        uint8
)

// Region payload compression schemes. The values are the scheme bytes stored in
// each payload header and are fixed by the region file format.
const (
	CompressionGZip CompressionType = 0x1 // CompressionGZip represents gzip (RFC 1952) compression.
	CompressionZLib CompressionType = 0x2 // CompressionZLib represents zlib (RFC 1950) compression.
	CompressionNone CompressionType = 0x3 // CompressionNone represents an uncompressed payload.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.

	// compressionNoneAlias is accepted on read as passthrough.
	compressionNoneAlias CompressionType = 0x0
)

// Archive record compression. Archives are not region files, so these are free to
// use codecs the region format does not define.
const (
	ArchiveNone ArchiveCompression = 0x1 // ArchiveNone stores records uncompressed.
	ArchiveZstd ArchiveCompression = 0x2 // ArchiveZstd represents Zstandard compression.
	ArchiveS2   ArchiveCompression = 0x3 // ArchiveS2 represents S2 compression.
	ArchiveLZ4  ArchiveCompression = 0x4 // ArchiveLZ4 represents LZ4 block compression.
)

// DataVersion is the world data version written into every chunk document.
const DataVersion int32 = 4189

// Chunk generation stages, in pipeline order. Only StatusFull chunks are loadable.
const (
	StatusEmpty ChunkStatus = iota
	StatusStructureStarts
	StatusStructureReferences
	StatusBiomes
	StatusNoise
	StatusSurface
	StatusCarvers
	StatusFeatures
	StatusInitializeLight
	StatusLight
	StatusSpawn
	StatusFull

	StatusUnknown ChunkStatus = 0xFF
)

const statusNamespace = "minecraft:"

var statusNames = [...]string{
	StatusEmpty:               "empty",
	StatusStructureStarts:     "structure_starts",
	StatusStructureReferences: "structure_references",
	StatusBiomes:              "biomes",
	StatusNoise:               "noise",
	StatusSurface:             "surface",
	StatusCarvers:             "carvers",
	StatusFeatures:            "features",
	StatusInitializeLight:     "initialize_light",
	StatusLight:               "light",
	StatusSpawn:               "spawn",
	StatusFull:                "full",
}

func (c CompressionType) String() string {
	switch c {
	case CompressionGZip:
		return "GZip"
	case CompressionZLib:
		return "ZLib"
	case CompressionNone, compressionNoneAlias:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Canonical folds scheme aliases into the value written by this package.
// It returns false for bytes outside the region format.
func (c CompressionType) Canonical() (CompressionType, bool) {
	switch c {
	case CompressionGZip, CompressionZLib, CompressionNone, CompressionLZ4:
		return c, true
	case compressionNoneAlias:
		return CompressionNone, true
	default:
		return c, false
	}
}

// ParseCompression parses a scheme name as used in configuration files.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "gzip":
		return CompressionGZip, true
	case "zlib", "":
		return CompressionZLib, true
	case "none":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (a ArchiveCompression) String() string {
	switch a {
	case ArchiveNone:
		return "None"
	case ArchiveZstd:
		return "Zstd"
	case ArchiveS2:
		return "S2"
	case ArchiveLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseArchiveCompression parses an archive codec name.
func ParseArchiveCompression(name string) (ArchiveCompression, bool) {
	switch strings.ToLower(name) {
	case "none":
		return ArchiveNone, true
	case "zstd", "":
		return ArchiveZstd, true
	case "s2":
		return ArchiveS2, true
	case "lz4":
		return ArchiveLZ4, true
	default:
		return 0, false
	}
}

// String returns the namespaced status name stored in chunk documents.
func (s ChunkStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNamespace + statusNames[s]
	}

	return "unknown"
}

// ParseChunkStatus parses a stored status name. Both namespaced
// ("minecraft:full") and bare ("full") names are accepted.
func ParseChunkStatus(name string) ChunkStatus {
	name = strings.TrimPrefix(name, statusNamespace)
	for i, n := range statusNames {
		if n == name {
			return ChunkStatus(i)
		}
	}

	return StatusUnknown
}
