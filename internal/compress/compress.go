package compress

// Compress encodes and decodes byte payloads. Used for the raw OCR text
// stored alongside a post.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// FromName returns the codec registered under the given name,
// falling back to gzip for unknown names.
func FromName(name string) Compress {
	switch name {
	case "nop", "":
		return NewNop()
	case "brotli":
		return NewBrotli()
	case "lz4":
		return NewLZ4()
	default:
		return NewGZip()
	}
}
