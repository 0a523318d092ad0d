package render

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
)

// plantumlAlphabet is PlantUML's base64 alphabet: digits first, then upper
// and lower case letters, then '-' and '_'.
const plantumlAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var plantumlEncoding = base64.NewEncoding(plantumlAlphabet).WithPadding(base64.NoPadding)

// Encode returns source in PlantUML's text encoding, suitable as the last
// path segment of a server URL.
func Encode(source []byte) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(source); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return plantumlEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode.
func Decode(encoded string) ([]byte, error) {
	compressed, err := plantumlEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	r := flate.NewReader(bytes.NewReader(compressed))
	defer func() {
		_ = r.Close()
	}()
	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
