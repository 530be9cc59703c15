package objects

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"
)

// Envelope is an object in its uncompressed storage form:
//
//	"<kind> <len>\0<bytes>"
//
// The hash of an object is the SHA-1 of its envelope.
type Envelope []byte

// CreateHeader builds the "<kind> <len>\0" prefix of an envelope
func CreateHeader(kind ObjectType, size int64) []byte {
	header := make([]byte, 0, len(kind)+22)
	header = append(header, kind...)
	header = append(header, ' ')
	header = strconv.AppendInt(header, size, 10)
	return append(header, 0)
}

// Wrap prefixes content with its header
func Wrap(kind ObjectType, content []byte) Envelope {
	header := CreateHeader(kind, int64(len(content)))
	env := make(Envelope, 0, len(header)+len(content))
	env = append(env, header...)
	return append(env, content...)
}

// Unwrap validates the header and returns the kind and payload.
// The declared length must match the payload exactly.
func (e Envelope) Unwrap() (ObjectType, []byte, error) {
	nul := bytes.IndexByte(e, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("envelope: header not terminated")
	}

	kindName, sizeField, ok := bytes.Cut(e[:nul], []byte{' '})
	if !ok {
		return "", nil, fmt.Errorf("envelope: header %q has no length", e[:nul])
	}

	kind, err := ParseObjectType(string(kindName))
	if err != nil {
		return "", nil, fmt.Errorf("envelope: %w", err)
	}

	size, err := strconv.ParseInt(string(sizeField), 10, 64)
	if err != nil || size < 0 {
		return "", nil, fmt.Errorf("envelope: bad length %q", sizeField)
	}

	payload := e[nul+1:]
	if int64(len(payload)) != size {
		return "", nil, fmt.Errorf("envelope: header says %d bytes, payload has %d", size, len(payload))
	}
	return kind, payload, nil
}

// Encode produces the on-disk bytes of a loose object: the zlib-deflated envelope
func Encode(kind ObjectType, content []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	if _, err := zw.Write(Wrap(kind, content)); err != nil {
		zw.Close()
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Inflate reverses the zlib layer and returns the raw envelope
func Inflate(stored []byte) (Envelope, error) {
	zr, err := zlib.NewReader(bytes.NewReader(stored))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return Envelope(data), nil
}

// Decode is Inflate followed by Unwrap
func Decode(stored []byte) (ObjectType, []byte, error) {
	env, err := Inflate(stored)
	if err != nil {
		return "", nil, err
	}
	return env.Unwrap()
}
