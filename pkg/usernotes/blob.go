// BLOB codec for the bulk per-user note data. The wire form embeds the users
// map as base64-encoded, zlib-compressed compact JSON so the outer record
// stays small and diffable while the note history grows.

package usernotes

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// pack serializes the users map to compact JSON, compresses it with zlib at
// best compression, and base64-encodes the result. A nil map packs as the
// empty map.
func pack(users map[string]*userJSON) (string, error) {
	if users == nil {
		users = map[string]*userJSON{}
	}

	data, err := json.Marshal(users)
	if err != nil {
		return "", fmt.Errorf("marshaling users: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("creating zlib writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compressing users: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("flushing zlib writer: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// unpack reverses pack: base64-decode, decompress, parse. It is a strict
// inverse of pack for every valid users map, including the empty map.
func unpack(blob string) (map[string]*userJSON, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding blob base64: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("opening blob stream: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing blob: %w", err)
	}

	users := make(map[string]*userJSON)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing users: %w", err)
	}
	return users, nil
}
