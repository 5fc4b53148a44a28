package stream

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// Stream tokens are a reversible encoding of the absolute season-directory
// path, opaque to clients and safe inside a URL path segment.

// EncodeToken wraps a season directory path into a stream token.
func EncodeToken(seasonDir string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(seasonDir))
}

// DecodeToken recovers the season directory path from a token.
func DecodeToken(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("malformed stream token: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("empty stream token")
	}
	return string(raw), nil
}
