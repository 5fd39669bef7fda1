// Package region reads and writes Anvil region files.
//
// A region file stores up to 1024 chunks of a 32×32 grid. It starts with two
// 4096-byte tables indexed by local index (x&31) + (z&31)*32:
//
//	offset 0    location table, 1024 × {sector offset u24, sector count u8}
//	offset 4096 timestamp table, 1024 × u32 epoch seconds
//
// Every present chunk occupies a run of whole 4096-byte sectors starting at
// sector 2 or later:
//
//	length u32        1 + len(body)
//	scheme u8         format.CompressionType
//	body              length-1 bytes
//	padding           zeros up to the next sector boundary
//
// All integers are big-endian. Files are named r.<x>.<z>.mca after the region
// coordinate, which is the chunk coordinate shifted right by 5.
//
// # Allocation
//
// A rewritten chunk keeps its offset when its run is large enough. Otherwise
// FindFreeSector picks the lowest gap that fits. Runs are never compacted; a chunk
// that moves or shrinks leaves dead sectors behind until a later allocation lands
// on them.
package region
