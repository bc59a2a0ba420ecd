// Package storage persists uploaded photo bytes under generated names.
package storage

import (
	"context"
	"encoding/hex"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"photoshare/internal/crypto"
)

// FileStore writes and removes photo files by generated name.
type FileStore interface {
	// Save persists the stream under name. The name must not already exist.
	Save(ctx context.Context, name string, r io.Reader) error
	// Remove deletes a stored file. Used to undo a write whose photo record
	// could not be created.
	Remove(ctx context.Context, name string) error
}

// GenerateName returns a storage name that cannot collide across concurrent
// uploads: millisecond timestamp plus a random nonce. Only the extension of
// the client-supplied name is preserved, and only when it looks harmless.
func GenerateName(originalName string) (string, error) {
	nonce, err := crypto.RandBytes(8)
	if err != nil {
		return "", err
	}
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return millis + "-" + hex.EncodeToString(nonce) + safeExt(originalName), nil
}

// safeExt extracts a lowercase extension, rejecting anything that is not a
// short run of letters and digits.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
