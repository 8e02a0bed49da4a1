package cache

// DocumentKeyOpts are the inputs besides events that shape a document.
type DocumentKeyOpts struct {
	WeekStart string `json:"week_start"`
	// ConfigHash is the hash of the layout configuration.
	ConfigHash string `json:"config_hash"`
}

// ArtifactKeyOpts are the inputs that shape one rendered output.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Page       int    `json:"page"`
	FontFamily string `json:"font_family,omitempty"`
	WithOps    bool   `json:"with_ops,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey returns the key of an assembled document.
	DocumentKey(eventsHash string, opts DocumentKeyOpts) string
	// ArtifactKey returns the key of one output of a document.
	ArtifactKey(documentID string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(eventsHash string, opts DocumentKeyOpts) string {
	return hashKey("document", eventsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(documentID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", documentID, opts)
}
