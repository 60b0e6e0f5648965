// Package registry provides a global registry for frame codecs.
// Codecs register themselves in init() functions, allowing the pipeline
// and the display surfaces to pick an encoding by name from config.
package registry

import (
	"fmt"
	"image"
	"io"
	"sort"
	"sync"
)

// Codec encodes canvases into a transferable byte stream and back.
type Codec interface {
	// ID returns the unique name used in config and on the wire (e.g., "jpeg").
	ID() string

	// Title returns a human-readable description for listings.
	Title() string

	// Lossless reports whether Decode(Encode(img)) reproduces img exactly.
	Lossless() bool

	// Encode writes img to w. quality is a 1-100 hint; codecs without a
	// quality setting ignore it.
	Encode(w io.Writer, img image.Image, quality int) error

	// Decode reads one image from r.
	Decode(r io.Reader) (image.Image, error)
}

// CodecInfo contains metadata about a registered codec.
type CodecInfo struct {
	ID       string
	Title    string
	Lossless bool
}

// Factory is a function that creates a codec instance.
type Factory func() Codec

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]CodecInfo)
	mu        sync.RWMutex
)

// Register adds a codec factory to the registry.
// Typically called from a codec's init() function.
// Panics if a codec with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: codec %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	c := f()
	infos[id] = CodecInfo{ID: id, Title: c.Title(), Lossless: c.Lossless()}
}

// List returns information about all registered codecs, sorted by ID.
func List() []CodecInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CodecInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a codec by its ID.
// Returns an error if the codec ID is not registered.
func Create(id string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown codec %q", id)
	}

	return f(), nil
}

// Exists checks if a codec with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
