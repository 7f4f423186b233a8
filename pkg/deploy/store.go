package deploy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadStrict reads and sanitizes a Config from path. It returns
// ErrMissingFile if path does not exist, wrapping the underlying error for
// errors.Is(err, ErrMissingFile) to still succeed.
func LoadStrict(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %v", ErrMissingFile, err)
		}
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return Sanitize(cfg), nil
}

// LoadOrDefault is LoadStrict but returns DefaultConfig, with no error,
// when path is missing or unreadable.
func LoadOrDefault(path string) Config {
	cfg, err := LoadStrict(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Save sanitizes cfg and writes it to path as pretty-printed JSON with
// lexicographically sorted object keys. encoding/json already sorts map
// keys (covering Environments); struct fields are declared in
// alphabetical order within Config, EnvConfig and ABPolicy so their
// marshaled object keys come out sorted too. time.Time marshals as
// RFC 3339, which is ISO-8601.
func Save(path string, cfg Config) error {
	sanitized := Sanitize(cfg)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sanitized); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
