package patterns

import "github.com/visionbox-team/pixelfield/field"

// Info describes a pattern for the CLI and the viewer.
type Info struct {
	Kind        field.Kind     // Identifier used in config and flags
	Name        string         // Display name
	Description string         // What the pattern does
	Sets        field.Channels // Channels the pattern writes
}

// Registry holds metadata about all patterns.
// This keeps config names, CLI flags and viewer buttons in sync.
type Registry struct {
	patterns []Info
	byKind   map[field.Kind]Info
}

// NewRegistry creates a registry with all known patterns.
func NewRegistry() *Registry {
	reg := &Registry{
		byKind: make(map[field.Kind]Info),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known patterns to the registry.
// Update this when adding new patterns.
func (r *Registry) registerDefaults() {
	r.Register(Info{Kind: KindGrid, Name: "Grid", Description: "Image-shaped pixel grid", Sets: field.ChannelPosition | field.ChannelScale})
	r.Register(Info{Kind: KindSpiral, Name: "Spiral", Description: "Climbing Archimedean spiral", Sets: field.ChannelPosition | field.ChannelScale})
	r.Register(Info{Kind: KindVShape, Name: "V-Shape", Description: "Fuzzy V silhouette", Sets: field.ChannelPosition})
	r.Register(Info{Kind: KindDisplace, Name: "Displace", Description: "Noise-weighted random nudge", Sets: field.ChannelPosition})
	r.Register(Info{Kind: KindImage, Name: "Image", Description: "Color and size from image pixels", Sets: field.ChannelColor | field.ChannelScale})
}

// Register adds a pattern to the registry.
func (r *Registry) Register(info Info) {
	r.patterns = append(r.patterns, info)
	r.byKind[info.Kind] = info
}

// Get returns pattern info by kind.
func (r *Registry) Get(kind field.Kind) (Info, bool) {
	info, ok := r.byKind[kind]
	return info, ok
}

// GetName returns the display name for a kind.
// Falls back to the kind itself if not found.
func (r *Registry) GetName(kind field.Kind) string {
	if info, ok := r.byKind[kind]; ok {
		return info.Name
	}
	return string(kind)
}

// All returns all registered patterns in registration order.
func (r *Registry) All() []Info {
	return r.patterns
}

// Kinds returns all pattern kinds in registration order.
func (r *Registry) Kinds() []field.Kind {
	kinds := make([]field.Kind, len(r.patterns))
	for i, info := range r.patterns {
		kinds[i] = info.Kind
	}
	return kinds
}
