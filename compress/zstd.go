package compress

// ZstdCompressor compresses table payloads with Zstandard.
//
// This is the default codec for table files: capture output is written once
// and read back many times by analysis tools, so ratio matters more than
// compression speed, and the text-heavy metadata sections compress well.
//
// Two implementations exist behind build tags: a cgo binding (valyala/gozstd)
// when cgo is available, and a pure-Go implementation (klauspost/compress)
// otherwise. Both produce standard Zstd frames and are interchangeable on
// the wire.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
