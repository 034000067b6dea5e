package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// PublicIDFromURL derives the storage public id of a delivery URL:
// the last path segment without its extension, prefixed with folder.
// "https://res.example.com/.../abc123.mp4" + "properties/videos"
// becomes "properties/videos/abc123".
func PublicIDFromURL(rawURL, folder string) string {
	base := path.Base(rawURL)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if folder == "" {
		return base
	}
	return folder + "/" + base
}

// ContentHash returns the hex SHA-256 of a media buffer, used for
// duplicate-upload detection.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SplitList accepts either an already-split list or a single
// comma-joined string and returns trimmed, non-empty elements.
func SplitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
