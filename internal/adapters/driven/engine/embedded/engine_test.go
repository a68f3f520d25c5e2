package embedded

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

func collectTerms(c driven.TermCursor, end driven.TermCursor) []driven.TermEntry {
	var out []driven.TermEntry
	for ; !c.Equal(end); c.Next() {
		out = append(out, c.Get())
	}
	return out
}

func newWritable(t *testing.T) (*Engine, driven.WritableDatabase, string) {
	t.Helper()
	e := New()
	dir := filepath.Join(t.TempDir(), "db")
	db, err := e.OpenWritableDatabase(dir, domain.DBCreateOrOpen)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return e, db, dir
}

func TestEngine_Name(t *testing.T) {
	assert.Equal(t, "embedded", New().Name())
}

func TestOpenDatabase_Missing(t *testing.T) {
	_, err := New().OpenDatabase(filepath.Join(t.TempDir(), "missing"))

	var nerr *domain.NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "DatabaseOpeningError")
	assert.ErrorIs(t, err, domain.ErrNativeFailure)
}

func TestOpenWritableDatabase_CreateExisting(t *testing.T) {
	e, db, dir := newWritable(t)
	require.NoError(t, db.Commit())

	_, err := e.OpenWritableDatabase(dir, domain.DBCreate)
	var nerr *domain.NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "DatabaseCreateError")
}

func TestDocument_TermsAndPositions(t *testing.T) {
	doc := New().NewDocument()
	defer doc.Close()

	doc.AddTerm("cat", 1)
	doc.AddPosting("dog", 3, 1)
	doc.AddPosting("dog", 3, 1)
	doc.AddPosting("dog", 1, 1)

	terms := collectTerms(doc.TermsBegin(), doc.TermsEnd())
	assert.Equal(t, []driven.TermEntry{
		{Name: "cat", Wdf: 1, PositionCount: 0},
		{Name: "dog", Wdf: 3, PositionCount: 2},
	}, terms)

	c := doc.TermsBegin()
	c.Next()
	var positions []domain.Position
	pb, pe := c.PositionsBegin(), c.PositionsEnd()
	for ; !pb.Equal(pe); pb.Next() {
		positions = append(positions, pb.Get())
	}
	assert.Equal(t, []domain.Position{1, 3}, positions)
}

func TestDocument_Values(t *testing.T) {
	doc := New().NewDocument()
	doc.AddValue(5, "five")
	doc.AddValue(1, "one")
	doc.AddValue(2, "two")
	doc.AddValue(2, "")

	var got []driven.ValueEntry
	b, e := doc.ValuesBegin(), doc.ValuesEnd()
	for ; !b.Equal(e); b.Next() {
		got = append(got, b.Get())
	}
	assert.Equal(t, []driven.ValueEntry{{Slot: 1, Value: "one"}, {Slot: 5, Value: "five"}}, got)
}

func TestDocument_UseAfterClose(t *testing.T) {
	doc := New().NewDocument()
	doc.Close()
	assert.Panics(t, func() { doc.SetData("x") })
}

func TestDatabase_RoundTrip(t *testing.T) {
	e, db, dir := newWritable(t)

	doc := e.NewDocument()
	doc.SetData("payload")
	doc.AddPosting("fox", 0, 1)
	doc.AddValue(0, "v")
	id, err := db.AddDocument(doc)
	require.NoError(t, err)
	doc.Close()
	assert.Equal(t, domain.DocumentID(1), id)
	assert.Equal(t, uint32(1), db.DocCount())
	require.NoError(t, db.Commit())

	reader, err := e.OpenDatabase(dir)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, db.UUID(), reader.UUID())

	loaded, err := reader.Document(id)
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, "payload", loaded.Data())
	assert.Equal(t, []driven.TermEntry{{Name: "fox", Wdf: 1, PositionCount: 1}},
		collectTerms(loaded.TermsBegin(), loaded.TermsEnd()))

	_, err = reader.Document(42)
	var nerr *domain.NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "DocNotFoundError")
}

func TestDatabase_ReadOnlyRejectsWrites(t *testing.T) {
	e, db, dir := newWritable(t)
	require.NoError(t, db.Commit())

	reader, err := e.OpenDatabase(dir)
	require.NoError(t, err)
	defer reader.Close()

	ro, ok := reader.(driven.WritableDatabase)
	require.True(t, ok)
	err = ro.DeleteDocument("Qx")
	assert.ErrorIs(t, err, domain.ErrNativeFailure)
}

func TestDatabase_ReplaceAndDelete(t *testing.T) {
	e, db, _ := newWritable(t)

	for _, data := range []string{"v1", "v2"} {
		doc := e.NewDocument()
		doc.SetData(data)
		doc.AddTerm("Qpath", 1)
		_, err := db.ReplaceDocument("Qpath", doc)
		require.NoError(t, err)
		doc.Close()
	}
	assert.Equal(t, uint32(1), db.DocCount())

	loaded, err := db.Document(1)
	require.NoError(t, err)
	assert.Equal(t, "v2", loaded.Data())
	loaded.Close()

	require.NoError(t, db.DeleteDocument("Qpath"))
	assert.Zero(t, db.DocCount())
}

func TestDatabase_AllTerms(t *testing.T) {
	e, db, _ := newWritable(t)
	doc := e.NewDocument()
	doc.AddTerm("Sfox", 1)
	doc.AddTerm("fox", 1)
	doc.AddTerm("Sdog", 1)
	_, err := db.AddDocument(doc)
	require.NoError(t, err)

	var names []string
	for _, term := range collectTerms(db.AllTermsBegin("S"), db.AllTermsEnd("S")) {
		names = append(names, term.Name)
	}
	assert.Equal(t, []string{"Sdog", "Sfox"}, names)
}

func TestDatabase_EngineMismatch(t *testing.T) {
	_, db, _ := newWritable(t)
	_, err := db.AddDocument(foreignDocument{})
	assert.ErrorIs(t, err, domain.ErrEngineMismatch)
}

// foreignDocument is a document from another engine.
type foreignDocument struct{ driven.Document }

func TestTermGenerator_Positions(t *testing.T) {
	e := New()
	doc := e.NewDocument()
	st, err := e.NewStemmer("english")
	require.NoError(t, err)

	g := e.NewTermGenerator()
	g.SetStemmer(st)
	st.Close()
	g.SetDocument(doc)
	g.IndexText("The quick fox", 1, "")
	g.Close()

	terms := collectTerms(doc.TermsBegin(), doc.TermsEnd())
	assert.Equal(t, []driven.TermEntry{
		{Name: "fox", Wdf: 1, PositionCount: 1},
		{Name: "quick", Wdf: 1, PositionCount: 1},
		{Name: "the", Wdf: 1, PositionCount: 1},
	}, terms)

	positionOf := func(term string) domain.Position {
		c, end := doc.TermsBegin(), doc.TermsEnd()
		for ; !c.Equal(end); c.Next() {
			if c.Get().Name == term {
				return c.PositionsBegin().Get()
			}
		}
		t.Fatalf("term %q not found", term)
		return 0
	}
	assert.Equal(t, domain.Position(0), positionOf("the"))
	assert.Equal(t, domain.Position(1), positionOf("quick"))
	assert.Equal(t, domain.Position(2), positionOf("fox"))
}

func TestTermGenerator_StemsAndPrefixes(t *testing.T) {
	e := New()
	doc := e.NewDocument()
	st, err := e.NewStemmer("english")
	require.NoError(t, err)

	g := e.NewTermGenerator()
	g.SetStemmer(st)
	g.SetDocument(doc)
	g.IndexText("Running, RUNS!", 1, "S")

	var names []string
	for _, term := range collectTerms(doc.TermsBegin(), doc.TermsEnd()) {
		names = append(names, term.Name)
	}
	assert.Equal(t, []string{"Srun"}, names)
	assert.Equal(t, uint32(2), collectTerms(doc.TermsBegin(), doc.TermsEnd())[0].Wdf)
}

func TestStemmer(t *testing.T) {
	e := New()

	st, err := e.NewStemmer("english")
	require.NoError(t, err)
	assert.Equal(t, "run", st.Stem("running"))
	assert.Equal(t, "Xapian::Stem(english)", st.Describe())

	none, err := e.NewStemmer("none")
	require.NoError(t, err)
	assert.Equal(t, "running", none.Stem("running"))

	_, err = e.NewStemmer("lovins")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = e.NewStemmer("kraaij_pohlmann")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = e.NewStemmer("klingon")
	var nerr *domain.NativeError
	require.True(t, errors.As(err, &nerr))
	assert.Contains(t, nerr.Message, "klingon")
}

func TestStemmer_Languages(t *testing.T) {
	e := New()
	unsupported := map[domain.Stemmer]bool{
		domain.StemmerEnglishLovins:       true,
		domain.StemmerDutchKraaijPohlmann: true,
	}

	for _, lang := range domain.Stemmers() {
		st, err := e.NewStemmer(lang.LanguageID())
		if unsupported[lang] {
			assert.ErrorIs(t, err, domain.ErrNotImplemented, lang.LanguageID())
			continue
		}
		require.NoError(t, err, lang.LanguageID())
		assert.NotEmpty(t, st.Stem("abcdefgh"), lang.LanguageID())
		st.Close()
	}
}

func TestStemmer_Algorithms(t *testing.T) {
	e := New()
	cases := []struct {
		language string
		word     string
		want     string
	}{
		{"porter", "connections", "connect"},
		{"german", "häuser", "haus"},
		{"german2", "haeuser", "haus"},
		{"dutch", "lichamelijk", "licham"},
		{"italian", "abbandonata", "abbandon"},
	}
	for _, tc := range cases {
		st, err := e.NewStemmer(tc.language)
		require.NoError(t, err, tc.language)
		assert.Equal(t, tc.want, st.Stem(tc.word), tc.language)
		st.Close()
	}
}

func TestQuery_Describe(t *testing.T) {
	e := New()
	a, b := e.NewQuery("cat"), e.NewQuery("dog")
	q, err := e.CombineQueries(domain.OpAnd, a, b)
	require.NoError(t, err)
	a.Close()
	b.Close()
	assert.Equal(t, "Query((cat AND dog))", q.Describe())

	_, err = e.CombineQueries(domain.QueryOp(99), q, q)
	assert.ErrorIs(t, err, domain.ErrNativeFailure)
}

func indexCorpus(t *testing.T, e *Engine, db driven.WritableDatabase, docs ...map[string]uint32) {
	t.Helper()
	for _, terms := range docs {
		doc := e.NewDocument()
		for term, wdf := range terms {
			doc.AddTerm(term, wdf)
		}
		_, err := db.AddDocument(doc)
		require.NoError(t, err)
		doc.Close()
	}
}

func runQuery(t *testing.T, e *Engine, db driven.Database, q driven.Query) []domain.Match {
	t.Helper()
	enq, err := e.NewEnquire(db)
	require.NoError(t, err)
	defer enq.Close()
	enq.SetQuery(q)
	ms, err := enq.MSet(0, 10)
	require.NoError(t, err)
	defer ms.Close()

	var out []domain.Match
	b, end := ms.Begin(), ms.End()
	for ; !b.Equal(end); b.Next() {
		out = append(out, b.Get())
	}
	assert.Equal(t, len(out), ms.Size())
	return out
}

func ids(matches []domain.Match) []domain.DocumentID {
	out := make([]domain.DocumentID, len(matches))
	for i, m := range matches {
		out[i] = m.DocID
	}
	return out
}

func TestEnquire_Operators(t *testing.T) {
	e, db, _ := newWritable(t)
	indexCorpus(t, e, db,
		map[string]uint32{"cat": 1},
		map[string]uint32{"cat": 1, "dog": 2},
		map[string]uint32{"dog": 1},
	)

	tests := []struct {
		op   domain.QueryOp
		want []domain.DocumentID
	}{
		{domain.OpAnd, []domain.DocumentID{2}},
		{domain.OpOr, []domain.DocumentID{2, 1, 3}},
		{domain.OpAndNot, []domain.DocumentID{1}},
		{domain.OpXor, []domain.DocumentID{1, 3}},
		{domain.OpAndMaybe, []domain.DocumentID{2, 1}},
		{domain.OpFilter, []domain.DocumentID{2}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			q, err := e.CombineQueries(tt.op, e.NewQuery("cat"), e.NewQuery("dog"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(runQuery(t, e, db, q)))
		})
	}
}

func TestEnquire_RanksAndPercent(t *testing.T) {
	e, db, _ := newWritable(t)
	indexCorpus(t, e, db,
		map[string]uint32{"fox": 1},
		map[string]uint32{"fox": 4},
	)

	matches := runQuery(t, e, db, e.NewQuery("fox"))
	require.Len(t, matches, 2)
	assert.Equal(t, domain.Match{DocID: 2, Rank: 0, Weight: 4, Percent: 100}, matches[0])
	assert.Equal(t, domain.Match{DocID: 1, Rank: 1, Weight: 1, Percent: 25}, matches[1])
}

func TestEnquire_Pagination(t *testing.T) {
	e, db, _ := newWritable(t)
	indexCorpus(t, e, db,
		map[string]uint32{"x": 1},
		map[string]uint32{"x": 1},
		map[string]uint32{"x": 1},
	)

	enq, err := e.NewEnquire(db)
	require.NoError(t, err)
	defer enq.Close()
	enq.SetQuery(e.NewQuery("x"))

	ms, err := enq.MSet(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ms.Size())
	m := ms.Begin().Get()
	assert.Equal(t, domain.DocumentID(2), m.DocID)
	assert.Equal(t, 1, m.Rank)

	ms, err = enq.MSet(5, 10)
	require.NoError(t, err)
	assert.Zero(t, ms.Size())
	assert.True(t, ms.Begin().Equal(ms.End()))

	ms, err = enq.MSet(1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 2, ms.Size())
}

func TestEnquire_NoQuery(t *testing.T) {
	e, db, _ := newWritable(t)
	enq, err := e.NewEnquire(db)
	require.NoError(t, err)

	ms, err := enq.MSet(0, 10)
	require.NoError(t, err)
	assert.Zero(t, ms.Size())
}
