// Package compress provides the pluggable payload codecs for table files.
//
// A table file's data section (presence bitmaps plus cell payloads for every
// column) is compressed as a single block by one of four codecs: None, Zstd,
// S2, or LZ4. The codec in effect is recorded in the file header so decoders
// can pick the matching Decompressor without configuration.
//
// Zstd is the default: metadata tables are dominated by repetitive UTF-8
// text (names, units, note paragraphs) where Zstd's ratio pays off. S2 and
// LZ4 trade ratio for speed; None is for debugging and tests.
package compress
