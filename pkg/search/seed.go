package search

import (
	"github.com/yeojin-dev/hangulsearch/internal/utils"
)

// KeyedItem pairs an item with its own search key, for the common case
// where the caller's item type either is the key or doesn't need a
// separate projection function.
type KeyedItem[T any] struct {
	Item T
	Key  string
}

// NewFromPairs builds an Index from items that already carry their own
// key, skipping the need for a keyFn closure at every call site.
func NewFromPairs[T any](pairs []KeyedItem[T], policy SearchPolicy) *Index[T] {
	items := make([]T, len(pairs))
	rawKeys := make([]string, len(pairs))
	for i, p := range pairs {
		items[i] = p.Item
		rawKeys[i] = p.Key
	}
	return newFromRawKeys(items, rawKeys, policy)
}

// tomlSeed is the flat seed-list shape NewFromTOMLSeed reads: a bare
// array of tables each carrying one search key.
type tomlSeed struct {
	Keys []tomlSeedEntry `toml:"item"`
}

type tomlSeedEntry struct {
	Key string `toml:"key"`
}

// NewFromTOMLSeed builds an Index[string] from a flat TOML seed file of
// `[[item]]\nkey = "..."` entries, through the same utils.LoadTOMLFile
// helper the ambient config layer uses. Item values are the keys
// themselves.
func NewFromTOMLSeed(path string, policy SearchPolicy) (*Index[string], error) {
	var seed tomlSeed
	if err := utils.LoadTOMLFile(path, &seed); err != nil {
		return nil, err
	}
	keys := make([]string, len(seed.Keys))
	for i, e := range seed.Keys {
		keys[i] = e.Key
	}
	return newFromRawKeys(keys, keys, policy), nil
}
