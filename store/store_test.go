package store

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/errors"
	"github.com/c360/lore/metric"
	"github.com/c360/lore/vocabulary"
)

const dota = `
using dota:ontology:2022
kind Hero { label "Hero" weight 3 }
kind Item
attr Name
rel Hero hasOne Name
rel Hero carries Item { max 6 }
`

func mustAdd(t *testing.T, s *Store, filename, src string) string {
	t.Helper()
	id, err := s.AddSource(filename, src)
	require.NoError(t, err)
	return id
}

func TestStore_AddSource(t *testing.T) {
	s := New()
	id := mustAdd(t, s, "dota.lore", dota)

	_, err := uuid.Parse(id)
	assert.NoError(t, err, "batch id should be a uuid")

	kinds := s.Kinds()
	require.Len(t, kinds, 2)
	assert.Equal(t, ast.URI("dota:ontology:2022/Hero"), kinds[0].Name.URI())
	assert.Equal(t, ast.URI("dota:ontology:2022/Item"), kinds[1].Name.URI())

	attrs := s.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, ast.URI("dota:ontology:2022/Name"), attrs[0].Name.URI())
	assert.Empty(t, attrs[0].Fields)

	rels := s.RelationsOf("dota:ontology:2022/Hero")
	require.Len(t, rels, 2)
	assert.Equal(t, ast.URI("dota:ontology:2022/hasOne"), rels[0].Predicate.URI())
	assert.Equal(t, ast.URI("dota:ontology:2022/carries"), rels[1].Predicate.URI())
	assert.Empty(t, s.RelationsOf("dota:ontology:2022/Item"))
}

func TestStore_AddSourceErrors(t *testing.T) {
	s := New()

	_, err := s.AddSource("bad.lore", "kind {")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrParsingFailed))

	_, err = s.AddSource("bad.lore", "kind Band")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnresolvedNames))

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Batches())
}

func TestStore_Triples(t *testing.T) {
	s := New()
	mustAdd(t, s, "dota.lore", dota)

	has := func(subject, predicate, object, datatype string) {
		t.Helper()
		for _, tr := range s.Triples() {
			if tr.Subject == subject && tr.Predicate == predicate && tr.Object == object && tr.Datatype == datatype {
				return
			}
		}
		t.Errorf("missing triple (%s %s %s %s)", subject, predicate, object, datatype)
	}

	const ns = "dota:ontology:2022/"
	has(ns+"Hero", vocabulary.RdfType, vocabulary.OwlClass, "")
	has(ns+"Hero", vocabulary.LoreType, vocabulary.LoreKind, "")
	has(ns+"Hero", ns+"label", "Hero", vocabulary.XsdString)
	has(ns+"Hero", ns+"weight", "3", vocabulary.XsdInteger)
	has(ns+"Hero", vocabulary.LoreSourceFile, "file:dota.lore", "")
	has(ns+"Name", vocabulary.RdfType, vocabulary.OwlObjectProperty, "")
	has(ns+"Name", vocabulary.LoreType, vocabulary.LoreAttribute, "")
	has(ns+"hasOne", vocabulary.RdfsDomain, ns+"Hero", "")
	has(ns+"hasOne", vocabulary.RdfsRange, ns+"Name", "")
	has(ns+"hasOne", vocabulary.LoreType, vocabulary.LoreRelation, "")
	has(ns+"carries", ns+"max", "6", vocabulary.XsdInteger)
}

func TestStore_TriplesAreASet(t *testing.T) {
	s := New()
	mustAdd(t, s, "a.lore", "kind lore:Hero")
	n := s.Len()

	second := mustAdd(t, s, "a.lore", "kind lore:Hero")
	assert.Equal(t, n, s.Len())
	assert.Len(t, s.Kinds(), 1)

	for _, tr := range s.Triples() {
		assert.Equal(t, second, tr.Context, "later batches take over provenance")
	}
	assert.Len(t, s.Batches(), 2)
}

func TestStore_Provenance(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return stamp }))

	id := s.AddTree("hero.lore", &ast.Structure{
		Kinds: []ast.Kind{{Name: ast.AbsoluteName("lore:Hero")}},
	})

	for _, tr := range s.Triples() {
		assert.Equal(t, "hero.lore", tr.Source)
		assert.Equal(t, id, tr.Context)
		assert.Equal(t, stamp, tr.Timestamp)
	}

	batches := s.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, Batch{ID: id, Source: "hero.lore", Declarations: 1, Triples: 3, AddedAt: stamp}, batches[0])
}

func TestStore_NoSourceFileWithoutFilename(t *testing.T) {
	s := New()
	s.AddTree("", &ast.Structure{Kinds: []ast.Kind{{Name: ast.AbsoluteName("lore:Hero")}}})
	assert.Equal(t, 2, s.Len())
}

func TestStore_Metrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	s := New(WithMetrics(registry))
	mustAdd(t, s, "dota.lore", dota)

	assert.Equal(t, float64(s.Len()), testutil.ToFloat64(registry.CoreMetrics().StoreTriples))
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddSource("dota.lore", dota)
			assert.NoError(t, err)
			_ = s.Kinds()
			_ = s.Relations()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Kinds(), 2)
	assert.Len(t, s.RelationsOf("dota:ontology:2022/Hero"), 16)
	assert.Len(t, s.Batches(), 8)
}

func TestStore_Relations(t *testing.T) {
	s := New()
	mustAdd(t, s, "dota.lore", dota)

	rels := s.Relations()
	require.Len(t, rels, 2)
	assert.Equal(t, ast.URI("dota:ontology:2022/carries"), rels[0].Predicate.URI())
	assert.Equal(t, ast.URI("dota:ontology:2022/hasOne"), rels[1].Predicate.URI())
}
