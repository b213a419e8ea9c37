package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/c360/lore/errors"
	"github.com/c360/lore/vocabulary"
)

// Term is an IRI (empty Datatype) or a typed literal.
type Term struct {
	Value    string
	Datatype string
}

// IRI returns an IRI term.
func IRI(value string) Term { return Term{Value: value} }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Datatype != "" }

// String renders IRIs in a registered namespace in compact form such as
// owl:Class and other IRIs as <iri>. Strings are quoted and integers bare.
func (t Term) String() string {
	switch t.Datatype {
	case "":
		if compact := vocabulary.Compact(t.Value); compact != t.Value {
			return compact
		}
		return "<" + t.Value + ">"
	case vocabulary.XsdInteger:
		return t.Value
	default:
		return strconv.Quote(t.Value)
	}
}

// Binding maps variable names (without '?') to terms.
type Binding map[string]Term

// Result is the answer to a query. Rows are sorted by the values of Vars.
type Result struct {
	Vars []string
	Rows []Binding
}

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.Rows) }

// Strings renders each row as "var: term" pairs in Vars order.
func (r *Result) Strings() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, 0, len(r.Vars))
		for _, v := range r.Vars {
			cells = append(cells, v+": "+row[v].String())
		}
		out[i] = cells
	}
	return out
}

// Query evaluates a basic graph pattern:
//
//	?kind a owl:Class .
//	?rel rdfs:domain ?kind .
//	?rel rdfs:range ?target
//
// optionally wrapped as SELECT [DISTINCT] (?var... | *) WHERE { ... }.
// A term is ?var, <iri>, a quoted string, an integer, `a` (rdf:type) or a
// bare IRI. Bare IRIs with a registered prefix such as rdfs:label expand,
// unless the bare form itself occurs in the store: after `using dc:ontology`
// the term dc:ontology/Hero names the declared kind. Write <iri> to skip
// expansion entirely.
func (s *Store) Query(q string) (*Result, error) {
	parsed, err := parseQuery(q)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Store", "Query", "parse query")
	}

	triples := s.Triples()
	known := storedIRIs(triples)
	for i := range parsed.patterns {
		for j := range parsed.patterns[i] {
			if bare := parsed.patterns[i][j].bare; bare != "" && known[bare] {
				parsed.patterns[i][j].term = IRI(bare)
			}
		}
	}

	solutions := []Binding{{}}
	for _, p := range parsed.patterns {
		var next []Binding
		for _, b := range solutions {
			for _, t := range triples {
				if nb, ok := p.match(b, t); ok {
					next = append(next, nb)
				}
			}
		}
		solutions = next
	}

	res := &Result{Vars: parsed.vars}
	seen := make(map[string]bool)
	for _, b := range solutions {
		row := make(Binding, len(parsed.vars))
		for _, v := range parsed.vars {
			row[v] = b[v]
		}
		if parsed.distinct {
			k := rowKey(parsed.vars, row)
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		res.Rows = append(res.Rows, row)
	}
	sort.SliceStable(res.Rows, func(i, j int) bool {
		for _, v := range res.Vars {
			a, b := res.Rows[i][v], res.Rows[j][v]
			if a.Value != b.Value {
				return a.Value < b.Value
			}
			if a.Datatype != b.Datatype {
				return a.Datatype < b.Datatype
			}
		}
		return false
	})
	return res, nil
}

func rowKey(vars []string, row Binding) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(row[v].Datatype)
		b.WriteByte(0)
		b.WriteString(row[v].Value)
		b.WriteByte(0)
	}
	return b.String()
}

type queryTerm struct {
	variable string
	term     Term
	// bare is the unexpanded text of a bare IRI
	bare string
}

func storedIRIs(triples []Triple) map[string]bool {
	out := make(map[string]bool, len(triples))
	for _, t := range triples {
		out[t.Subject] = true
		out[t.Predicate] = true
		if !t.IsLiteral() {
			out[t.Object] = true
		}
	}
	return out
}

func (q queryTerm) bind(b Binding, value Term) (Binding, bool) {
	if q.variable == "" {
		return b, q.term == value
	}
	if bound, ok := b[q.variable]; ok {
		return b, bound == value
	}
	nb := make(Binding, len(b)+1)
	for k, v := range b {
		nb[k] = v
	}
	nb[q.variable] = value
	return nb, true
}

type pattern [3]queryTerm

func (p pattern) match(b Binding, t Triple) (Binding, bool) {
	b, ok := p[0].bind(b, IRI(t.Subject))
	if !ok {
		return nil, false
	}
	if b, ok = p[1].bind(b, IRI(t.Predicate)); !ok {
		return nil, false
	}
	if b, ok = p[2].bind(b, t.ObjectTerm()); !ok {
		return nil, false
	}
	return b, true
}

type parsedQuery struct {
	vars     []string
	distinct bool
	patterns []pattern
}

func invalidQuery(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidQuery, fmt.Sprintf(format, args...))
}

func parseQuery(q string) (*parsedQuery, error) {
	toks, err := scanQuery(q)
	if err != nil {
		return nil, err
	}

	out := &parsedQuery{}
	var projection []string
	star := true
	i := 0

	if i < len(toks) && strings.EqualFold(toks[i], "select") {
		i++
		if i < len(toks) && strings.EqualFold(toks[i], "distinct") {
			out.distinct = true
			i++
		}
		if i < len(toks) && toks[i] == "*" {
			i++
		} else {
			star = false
			for i < len(toks) && strings.HasPrefix(toks[i], "?") {
				projection = append(projection, toks[i][1:])
				i++
			}
			if len(projection) == 0 {
				return nil, invalidQuery("SELECT expects * or variables")
			}
		}
		if i >= len(toks) || !strings.EqualFold(toks[i], "where") {
			return nil, invalidQuery("expected WHERE")
		}
		i++
		if i >= len(toks) || toks[i] != "{" {
			return nil, invalidQuery("expected { after WHERE")
		}
	}

	braced := i < len(toks) && toks[i] == "{"
	if braced {
		if toks[len(toks)-1] != "}" {
			return nil, invalidQuery("missing closing }")
		}
		toks = toks[i+1 : len(toks)-1]
	} else {
		toks = toks[i:]
	}

	seen := make(map[string]bool)
	var current []queryTerm
	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		if len(current) != 3 {
			return invalidQuery("pattern %d has %d terms, expected 3", len(out.patterns)+1, len(current))
		}
		out.patterns = append(out.patterns, pattern{current[0], current[1], current[2]})
		current = nil
		return nil
	}
	for _, tok := range toks {
		if tok == "." {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		term, err := parseTerm(tok)
		if err != nil {
			return nil, err
		}
		if term.variable != "" && !seen[term.variable] {
			seen[term.variable] = true
			out.vars = append(out.vars, term.variable)
		}
		current = append(current, term)
		if len(current) > 3 {
			return nil, invalidQuery("pattern %d has more than 3 terms", len(out.patterns)+1)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out.patterns) == 0 {
		return nil, invalidQuery("empty query")
	}

	if !star {
		for _, v := range projection {
			if !seen[v] {
				return nil, invalidQuery("projected variable ?%s does not occur in the pattern", v)
			}
		}
		out.vars = projection
	}
	return out, nil
}

func parseTerm(tok string) (queryTerm, error) {
	switch {
	case strings.HasPrefix(tok, "?"):
		name := tok[1:]
		if name == "" {
			return queryTerm{}, invalidQuery("variable without a name")
		}
		return queryTerm{variable: name}, nil
	case strings.HasPrefix(tok, "<"):
		return queryTerm{term: IRI(tok[1 : len(tok)-1])}, nil
	case strings.HasPrefix(tok, `"`):
		text, err := strconv.Unquote(tok)
		if err != nil {
			return queryTerm{}, invalidQuery("bad string literal %s", tok)
		}
		return queryTerm{term: Term{Value: text, Datatype: vocabulary.XsdString}}, nil
	case isDigits(tok):
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return queryTerm{}, invalidQuery("number out of range: %s", tok)
		}
		return queryTerm{term: Term{Value: strconv.FormatUint(n, 10), Datatype: vocabulary.XsdInteger}}, nil
	case tok == "a":
		return queryTerm{term: IRI(vocabulary.RdfType)}, nil
	case tok == "{" || tok == "}" || tok == "*":
		return queryTerm{}, invalidQuery("unexpected %q", tok)
	default:
		return queryTerm{term: IRI(vocabulary.Expand(tok)), bare: tok}, nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// scanQuery splits a query into raw tokens. A '.' ends a pattern when it
// stands alone or trails a term.
func scanQuery(q string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(q) {
		c := q[i]
		switch {
		case unicode.IsSpace(rune(c)):
			i++
		case c == '#':
			for i < len(q) && q[i] != '\n' {
				i++
			}
		case c == '{' || c == '}' || c == '.' || c == '*':
			toks = append(toks, string(c))
			i++
		case c == '"':
			j := i + 1
			for j < len(q) && q[j] != '"' {
				if q[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(q) {
				return nil, invalidQuery("unterminated string literal")
			}
			toks = append(toks, q[i:j+1])
			i = j + 1
		case c == '<':
			j := strings.IndexByte(q[i:], '>')
			if j < 0 {
				return nil, invalidQuery("unterminated IRI")
			}
			toks = append(toks, q[i:i+j+1])
			i += j + 1
		default:
			j := i
			for j < len(q) && !unicode.IsSpace(rune(q[j])) && !strings.ContainsRune("{}\"<", rune(q[j])) {
				j++
			}
			word := q[i:j]
			if strings.HasSuffix(word, ".") {
				toks = append(toks, word[:len(word)-1], ".")
			} else {
				toks = append(toks, word)
			}
			i = j
		}
	}
	return toks, nil
}
