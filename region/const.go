package region

const (
	// SectorSize is the allocation unit of a region file.
	SectorSize = 4096
	// EntryCount is the number of chunks a region holds, a 32×32 grid.
	EntryCount = 1024
	// Width is the edge length of a region in chunks.
	Width = 32
	// HeaderSize covers the location table and the timestamp table.
	HeaderSize = 2 * SectorSize
	// FirstDataSector is the lowest sector a payload may start at.
	FirstDataSector = 2
	// MaxSectorCount is the largest run a location entry can describe.
	MaxSectorCount = 255
	// MaxSectorOffset is the largest offset a location entry can describe.
	MaxSectorOffset = 1<<24 - 1
	// PayloadHeaderSize is the length field plus the scheme byte.
	PayloadHeaderSize = 5
	// FileExtension is the suffix of Anvil region files.
	FileExtension = ".mca"

	locationEntrySize = 4
	timestampSize     = 4
)
