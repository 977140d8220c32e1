package topiccodec

import (
	"fmt"
	"strings"
)

const (
	unspecifiedLabel = "Unspecified"
	unknownLabel     = "Unknown"
)

// Codec for batch compression on transports which support it
type Codec uint8

const (
	CodecUnspecified Codec = iota
	CodecRaw
	CodecGzip
	CodecSnappy
	CodecLz4
	CodecZstd
)

func (c Codec) String() string {
	switch c {
	case CodecUnspecified:
		return unspecifiedLabel
	case CodecRaw:
		return "Raw"
	case CodecGzip:
		return "Gzip"
	case CodecSnappy:
		return "Snappy"
	case CodecLz4:
		return "Lz4"
	case CodecZstd:
		return "Zstd"
	default:
		return unknownLabel
	}
}

// Parse accepts codec names in any case, empty name is CodecUnspecified.
func Parse(name string) (Codec, error) {
	if name == "" {
		return CodecUnspecified, nil
	}
	for c := CodecRaw; c <= CodecZstd; c++ {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}

	return CodecUnspecified, fmt.Errorf("partlog: unknown codec %q", name)
}
