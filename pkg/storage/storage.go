// Package storage provides the key-value store the journal document
// lives in. The rest of the application only sees Get/Set on opaque
// keys; the backing medium is an implementation detail.
package storage

// Well-known keys.
const (
	DocumentKey = "document"
	ThemeKey    = "theme"
)

// KV is a flat key-value store. Get reports ok=false when the key has
// never been written.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}
