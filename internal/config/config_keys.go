// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the CLI and MCP, where config is addressed by dotted
// keys (e.g., "search.max_edits").
//
// Design: Pointers are used for optional numeric fields so we can distinguish
// between "not set" (nil) and "explicitly set to zero". This matters for
// search.max_edits, where 0 is a legitimate value that disables typo
// tolerance.

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"owner",
		"server.addr",
		"auth.secret", "auth.cookie",
		"search.max_edits", "search.max_expansions", "search.complete_max_edits",
		"limits.max_title", "limits.max_content", "limits.max_file_size",
		"storage.backend", "storage.bucket", "storage.region", "storage.endpoint", "storage.public_url",
		"metadata.enabled", "metadata.timeout_ms",
	}
}

// IsSecret reports whether a key's value should be masked when displayed.
func IsSecret(key string) bool {
	return key == "auth.secret"
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "owner":
		return c.Owner, nil
	case "server.addr":
		return c.Addr(), nil
	case "auth.secret":
		return c.Auth.Secret, nil
	case "auth.cookie":
		return c.Cookie(), nil
	case "search.max_edits":
		return strconv.Itoa(c.MaxEdits()), nil
	case "search.max_expansions":
		return strconv.Itoa(c.MaxExpansions()), nil
	case "search.complete_max_edits":
		return strconv.Itoa(c.CompleteMaxEdits()), nil
	case "limits.max_title":
		return strconv.Itoa(c.MaxTitle()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	case "limits.max_file_size":
		return strconv.FormatInt(c.MaxFileSize(), 10), nil
	case "storage.backend":
		return c.Backend(), nil
	case "storage.bucket":
		return c.Storage.Bucket, nil
	case "storage.region":
		return c.Storage.Region, nil
	case "storage.endpoint":
		return c.Storage.Endpoint, nil
	case "storage.public_url":
		return c.Storage.PublicURL, nil
	case "metadata.enabled":
		return strconv.FormatBool(c.MetadataEnabled()), nil
	case "metadata.timeout_ms":
		return strconv.FormatInt(c.MetadataTimeout().Milliseconds(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. The resulting config is
// validated so out-of-range values are rejected before they are saved.
func (c *Config) Set(key, value string) error {
	switch key {
	case "owner":
		c.Owner = strings.TrimSpace(value)
	case "server.addr":
		c.Server.Addr = value
	case "auth.secret":
		c.Auth.Secret = value
	case "auth.cookie":
		c.Auth.Cookie = value
	case "search.max_edits":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		c.Search.MaxEdits = &n
	case "search.max_expansions":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		c.Search.MaxExpansions = &n
	case "search.complete_max_edits":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		c.Search.CompleteMaxEdits = &n
	case "limits.max_title":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxTitle = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		c.Limits.MaxContent = &n
	case "limits.max_file_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		c.Limits.MaxFileSize = &n
	case "storage.backend":
		c.Storage.Backend = strings.ToLower(value)
	case "storage.bucket":
		c.Storage.Bucket = value
	case "storage.region":
		c.Storage.Region = value
	case "storage.endpoint":
		c.Storage.Endpoint = value
	case "storage.public_url":
		c.Storage.PublicURL = value
	case "metadata.enabled":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: metadata.enabled must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Metadata.Enabled = &b
	case "metadata.timeout_ms":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		c.Metadata.TimeoutMS = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
	}
	return n, nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "owner":
		return c.Owner != ""
	case "server.addr":
		return c.Server.Addr != ""
	case "auth.secret":
		return c.Auth.Secret != ""
	case "auth.cookie":
		return c.Auth.Cookie != ""
	case "search.max_edits":
		return c.Search.MaxEdits != nil
	case "search.max_expansions":
		return c.Search.MaxExpansions != nil
	case "search.complete_max_edits":
		return c.Search.CompleteMaxEdits != nil
	case "limits.max_title":
		return c.Limits.MaxTitle != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "limits.max_file_size":
		return c.Limits.MaxFileSize != nil
	case "storage.backend":
		return c.Storage.Backend != ""
	case "storage.bucket":
		return c.Storage.Bucket != ""
	case "storage.region":
		return c.Storage.Region != ""
	case "storage.endpoint":
		return c.Storage.Endpoint != ""
	case "storage.public_url":
		return c.Storage.PublicURL != ""
	case "metadata.enabled":
		return c.Metadata.Enabled != nil
	case "metadata.timeout_ms":
		return c.Metadata.TimeoutMS != nil
	default:
		return false
	}
}
