package redis

const (
	// DefaultKeyPrefix namespaces every key written by homey
	DefaultKeyPrefix = "homey:"

	keyConfig      = "config"          // canonical config text
	keyConfigSaved = "config:saved_at" // RFC3339 timestamp of the last save
	keySaveCount   = "config:saves"    // number of saves mirrored
	keyUsage       = "usage"           // hash: link ID -> jump count
)

// Keys builds the Redis keys for one prefix
type Keys struct {
	prefix string
}

// NewKeys creates a key builder; an empty prefix falls back to DefaultKeyPrefix
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return Keys{prefix: prefix}
}

// Config returns the key holding the mirrored canonical configuration
func (k Keys) Config() string { return k.prefix + keyConfig }

// ConfigSavedAt returns the key holding the last save timestamp
func (k Keys) ConfigSavedAt() string { return k.prefix + keyConfigSaved }

// SaveCount returns the key counting mirrored saves
func (k Keys) SaveCount() string { return k.prefix + keySaveCount }

// Usage returns the hash key holding per-link jump counters
func (k Keys) Usage() string { return k.prefix + keyUsage }
