package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact of a script.
	ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Collapse string `json:"collapse"`
	NoRoot   bool   `json:"no_root"`
	Detailed bool   `json:"detailed"`
}

// artifactVersion is bumped whenever rendering output changes so stale
// entries are never served.
const artifactVersion = "artifact:v1"

// DefaultKeyer hashes key inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return hashKey(artifactVersion, scriptHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, giving each deployment
// sharing a backend its own namespace:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scriptHash, opts)
}
