package kvdocs

import "context"

// Backend is the minimal key-value contract the document layer is built on.
// It deliberately exposes only single-key primitives plus prefix enumeration:
// get, set, delete and key listing. No ordering and no cross-key atomicity is
// assumed beyond what a single operation provides.
type Backend interface {
	// Get returns the value stored at key, or ErrNotFound if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data at key, overwriting any existing value.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the key and reports how many keys were removed (0 or 1).
	Delete(ctx context.Context, key string) (int64, error)

	// Keys returns all keys starting with prefix. The order is unspecified
	// and the listing is not a consistent snapshot: concurrent mutations may
	// or may not be reflected.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Ping checks backend health
	Ping(ctx context.Context) error

	// Close releases resources held by the backend
	Close() error
}

// BackendConfig holds configuration for any backend
type BackendConfig struct {
	Type     string            // "redis", "filesystem", "memory", "s3"
	Addr     string            // Redis address (redis only)
	BasePath string            // Base directory (filesystem only)
	Bucket   string            // S3 bucket (s3 only)
	Region   string            // AWS region (s3 only)
	Endpoint string            // Custom endpoint (for S3-compatible services)
	Options  map[string]string // Backend-specific options
}

// Validate checks if the BackendConfig is valid
func (c BackendConfig) Validate() error {
	switch c.Type {
	case "":
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Type",
			"reason": "backend type is required",
		})
	case "redis", "memory":
		// No additional validation needed; redis falls back to env config
	case "filesystem":
		if c.BasePath == "" {
			return WithContext(ErrInvalidConfig, map[string]interface{}{
				"field":  "BasePath",
				"reason": "filesystem backend requires a base directory",
			})
		}
	case "s3":
		if c.Bucket == "" {
			return WithContext(ErrInvalidConfig, map[string]interface{}{
				"field":  "Bucket",
				"reason": "s3 backend requires a bucket",
			})
		}
		if c.Region == "" && c.Endpoint == "" {
			return WithContext(ErrInvalidConfig, map[string]interface{}{
				"field":  "Region/Endpoint",
				"reason": "s3 backend requires either Region or Endpoint",
			})
		}
	default:
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Type",
			"value":  c.Type,
			"reason": "unknown backend type",
		})
	}

	return nil
}
