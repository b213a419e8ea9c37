// Package store indexes resolved Lore declarations and answers queries
// over them.
//
// Every declaration added to a Store is kept twice: in typed indexes
// (kinds and attributes by URI, relations by subject URI) used by the code
// generators, and as RDF-style triples used by Query. A Store is safe for
// concurrent use; files compiled in parallel may be added from several
// goroutines.
package store

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/metric"
	"github.com/c360/lore/parser"
	"github.com/c360/lore/resolver"
	"github.com/c360/lore/vocabulary"
)

// Batch records one AddTree call.
type Batch struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Declarations int       `json:"declarations"`
	Triples      int       `json:"triples"`
	AddedAt      time.Time `json:"added_at"`
}

// Store is an in-memory index of resolved declarations.
type Store struct {
	mu sync.RWMutex

	kinds              map[ast.URI]ast.Kind
	attributes         map[ast.URI]ast.Attribute
	relationsBySubject map[ast.URI][]ast.Relation
	triples            map[tripleKey]Triple
	batches            []Batch

	logger  *slog.Logger
	metrics *metric.Metrics
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for batch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics reports the triple count to the registry's core metrics.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(s *Store) {
		if registry != nil {
			s.metrics = registry.CoreMetrics()
		}
	}
}

// WithClock overrides the time source used to stamp triples.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		kinds:              make(map[ast.URI]ast.Kind),
		attributes:         make(map[ast.URI]ast.Attribute),
		relationsBySubject: make(map[ast.URI][]ast.Relation),
		triples:            make(map[tripleKey]Triple),
		logger:             slog.Default(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddSource parses and resolves src, then adds the result. Parse and
// resolution errors are returned unchanged.
func (s *Store) AddSource(filename, src string) (string, error) {
	tree, err := parser.Parse(filename, src)
	if err != nil {
		return "", err
	}
	structure, err := resolver.Resolve(tree)
	if err != nil {
		return "", err
	}
	return s.AddTree(filename, structure), nil
}

// AddTree indexes a resolved declaration set and returns the id of the new
// batch. Kinds and attributes replace earlier declarations with the same
// URI; relations accumulate.
func (s *Store) AddTree(filename string, tree *ast.Structure) string {
	batchID := uuid.New().String()
	stamp := s.now()
	source := vocabulary.SourceFileIRI(filename)

	var triples []Triple
	provenance := func(subject string) {
		if source != "" {
			triples = append(triples, iri(subject, vocabulary.LoreSourceFile, source))
		}
	}
	for _, k := range tree.Kinds {
		triples = append(triples, KindTriples(k)...)
		provenance(k.Name.URI().String())
	}
	for _, a := range tree.Attributes {
		triples = append(triples, AttributeTriples(a)...)
		provenance(a.Name.URI().String())
	}
	for _, r := range tree.Relations {
		triples = append(triples, RelationTriples(r)...)
		provenance(r.Predicate.URI().String())
	}

	s.mu.Lock()
	for _, k := range tree.Kinds {
		s.kinds[k.Name.URI()] = k
	}
	for _, a := range tree.Attributes {
		s.attributes[a.Name.URI()] = a
	}
	for _, r := range tree.Relations {
		subject := r.Subject.URI()
		s.relationsBySubject[subject] = append(s.relationsBySubject[subject], r)
	}
	for _, t := range triples {
		t.Source = filename
		t.Context = batchID
		t.Timestamp = stamp
		s.triples[t.key()] = t
	}
	s.batches = append(s.batches, Batch{
		ID:           batchID,
		Source:       filename,
		Declarations: tree.Len(),
		Triples:      len(triples),
		AddedAt:      stamp,
	})
	total := len(s.triples)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordStoreTriples(total)
	}
	s.logger.Debug("added declarations to store",
		"batch", batchID,
		"source", filename,
		"declarations", tree.Len(),
		"triples", len(triples))

	return batchID
}

// Kinds returns every kind sorted by URI.
func (s *Store) Kinds() []ast.Kind {
	s.mu.RLock()
	out := make([]ast.Kind, 0, len(s.kinds))
	for _, k := range s.kinds {
		out = append(out, k)
	}
	s.mu.RUnlock()
	ast.SortKinds(out)
	return out
}

// Attributes returns every attribute sorted by URI.
func (s *Store) Attributes() []ast.Attribute {
	s.mu.RLock()
	out := make([]ast.Attribute, 0, len(s.attributes))
	for _, a := range s.attributes {
		out = append(out, a)
	}
	s.mu.RUnlock()
	ast.SortAttributes(out)
	return out
}

// RelationsOf returns the relations whose subject is uri, in insertion order.
func (s *Store) RelationsOf(uri ast.URI) []ast.Relation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ast.Relation(nil), s.relationsBySubject[uri]...)
}

// Relations returns every relation sorted by subject, predicate and object.
func (s *Store) Relations() []ast.Relation {
	s.mu.RLock()
	var out []ast.Relation
	for _, rels := range s.relationsBySubject {
		out = append(out, rels...)
	}
	s.mu.RUnlock()
	ast.SortRelations(out)
	return out
}

// Triples returns every distinct triple sorted by subject, predicate, object.
func (s *Store) Triples() []Triple {
	s.mu.RLock()
	out := make([]Triple, 0, len(s.triples))
	for _, t := range s.triples {
		out = append(out, t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Datatype < b.Datatype
	})
	return out
}

// Len returns the number of distinct triples.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}

// Batches returns every batch in the order it was added.
func (s *Store) Batches() []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Batch(nil), s.batches...)
}
