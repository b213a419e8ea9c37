package vocabulary

import (
	"sort"
	"strings"
	"sync"
)

// PrefixInfo describes a registered compact-name prefix.
type PrefixInfo struct {
	Prefix      string `json:"prefix" yaml:"prefix"`
	Namespace   string `json:"namespace" yaml:"namespace"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Global prefix registry
var (
	registryMu     sync.RWMutex
	prefixRegistry = make(map[string]PrefixInfo)
)

// Option is a functional option for configuring prefix registration.
type Option func(*PrefixInfo)

// WithDescription sets the human-readable description of the prefix.
func WithDescription(desc string) Option {
	return func(p *PrefixInfo) {
		p.Description = desc
	}
}

// RegisterPrefix registers prefix as the compact form of namespace.
// Registering an existing prefix overwrites it.
func RegisterPrefix(prefix, namespace string, opts ...Option) {
	info := PrefixInfo{Prefix: prefix, Namespace: namespace}
	for _, opt := range opts {
		opt(&info)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	prefixRegistry[prefix] = info
}

// LookupPrefix returns the registration for prefix, or nil.
func LookupPrefix(prefix string) *PrefixInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if info, exists := prefixRegistry[prefix]; exists {
		infoCopy := info
		return &infoCopy
	}
	return nil
}

// ListPrefixes returns every registration sorted by prefix.
func ListPrefixes() []PrefixInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]PrefixInfo, 0, len(prefixRegistry))
	for _, info := range prefixRegistry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// Expand turns "prefix:local" into a full IRI when prefix is registered.
// Anything else is returned unchanged.
func Expand(name string) string {
	i := strings.IndexByte(name, ':')
	if i <= 0 {
		return name
	}
	info := LookupPrefix(name[:i])
	if info == nil {
		return name
	}
	return info.Namespace + name[i+1:]
}

// Compact turns a full IRI into "prefix:local" using the longest matching
// registered namespace. IRIs outside every namespace are returned unchanged.
func Compact(iri string) string {
	info, ok := split(iri)
	if !ok {
		return iri
	}
	return info.Prefix + ":" + iri[len(info.Namespace):]
}

func split(iri string) (PrefixInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var best PrefixInfo
	found := false
	for _, info := range prefixRegistry {
		if !strings.HasPrefix(iri, info.Namespace) {
			continue
		}
		if !found || len(info.Namespace) > len(best.Namespace) ||
			(len(info.Namespace) == len(best.Namespace) && info.Prefix < best.Prefix) {
			best = info
			found = true
		}
	}
	return best, found
}
