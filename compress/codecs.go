package compress

import "github.com/arloliu/anvil/format"

// regionSchemes lists the canonical region schemes.
var regionSchemes = [...]format.CompressionType{
	format.CompressionGZip,
	format.CompressionZLib,
	format.CompressionNone,
	format.CompressionLZ4,
}

// Codecs holds one long-lived codec per region scheme so pooled encoders and
// decoders are reused across payloads. It is safe for concurrent use.
type Codecs struct {
	byScheme map[format.CompressionType]Codec
}

// NewCodecs creates codecs for every region scheme at the given level.
func NewCodecs(level int) (*Codecs, error) {
	c := &Codecs{byScheme: make(map[format.CompressionType]Codec, len(regionSchemes))}
	for _, scheme := range regionSchemes {
		codec, err := CreateCodec(scheme, level)
		if err != nil {
			return nil, err
		}
		c.byScheme[scheme] = codec
	}

	return c, nil
}

// Compress compresses data under a region scheme.
// Errors wrap ErrCompression and either ErrUnknownCompression or ErrCodec.
func (c *Codecs) Compress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := c.lookup(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, codecError(compressionType, "compress", err)
	}

	return out, nil
}

// Decompress decompresses data stored under a region scheme.
// Errors wrap ErrCompression and either ErrUnknownCompression or ErrCodec.
func (c *Codecs) Decompress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := c.lookup(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, codecError(compressionType, "decompress", err)
	}

	return out, nil
}

func (c *Codecs) lookup(compressionType format.CompressionType) (Codec, error) {
	canonical, ok := compressionType.Canonical()
	if !ok {
		return nil, unknownScheme(compressionType)
	}

	return c.byScheme[canonical], nil
}
