// Package section defines the low-level binary structures and layout
// constants of the snapshot format.
//
// It handles the fixed-size pieces of the file: the header, the job table
// and the round record sizing math. The variable-length sections (queue
// data, sharing data and their index tables) are decoded by the snapshot
// package on top of these constants.
//
// # File Structure
//
// A snapshot file is a sequence of 8-byte-aligned sections. All integers
// are little-endian. Every section after the header is located through a
// header offset, so sections can be fetched independently with byte-range
// requests:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (256 bytes reserved, 64/80 packed)               │
//	│  - magic "GPUVIZ01" (8 bytes)                           │
//	│  - version, roundCount, jobCount (u32 each)             │
//	│  - gpuTypeCount (u8), totalUnits (u16), pad (1)         │
//	│  - five u64 section offsets                             │
//	│  - v2: sharing data + sharing index offsets (u64 each)  │
//	├─────────────────────────────────────────────────────────┤
//	│ Config document (variable, NUL padded to 8)             │
//	│  - UTF-8 JSON: gpu_types, job_types, policy, window     │
//	├─────────────────────────────────────────────────────────┤
//	│ Job table (jobCount × 24 bytes, fixed per record)       │
//	├─────────────────────────────────────────────────────────┤
//	│ Round records (roundCount × RoundRecordSize bytes)      │
//	│  - 28 fixed telemetry bytes                             │
//	│  - gpuTypeCount × u16 used counts                       │
//	│  - totalUnits × u32 allocation array                    │
//	│  - padding to 8-byte multiple                           │
//	├─────────────────────────────────────────────────────────┤
//	│ Queue data (variable)                                   │
//	│  - per round: count (u16) + count × jobId (u32)         │
//	├─────────────────────────────────────────────────────────┤
//	│ Queue index (roundCount × u64)                          │
//	│  - offsets relative to the queue data base              │
//	├─────────────────────────────────────────────────────────┤
//	│ Sharing data (v2, variable)                             │
//	│  - per round: count (u16) + count × 18-byte records     │
//	├─────────────────────────────────────────────────────────┤
//	│ Sharing index (v2, roundCount × u64)                    │
//	│  - offsets relative to the sharing data base            │
//	└─────────────────────────────────────────────────────────┘
//
// The two index tables store offsets relative to their section's base
// rather than absolute file positions; the encoder can therefore finalize
// a section's internal layout before it knows where the section lands in
// the file. Fixed-size round records give O(1) random access by round
// index; the index tables give O(1) random access into the two
// variable-length sections.
package section
