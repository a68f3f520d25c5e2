//go:build cgo && xapian

package xapian

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	require.NoError(t, err)
	return e
}

func TestEngine_Name(t *testing.T) {
	assert.Contains(t, newEngine(t).Name(), "xapian ")
}

func TestDocument_TermList(t *testing.T) {
	doc := newEngine(t).NewDocument()
	defer doc.Close()

	doc.AddTerm("cat", 1)
	doc.AddPosting("dog", 3, 1)

	var got []driven.TermEntry
	b, e := doc.TermsBegin(), doc.TermsEnd()
	defer b.Close()
	defer e.Close()
	for ; !b.Equal(e); b.Next() {
		got = append(got, b.Get())
	}
	assert.Equal(t, []driven.TermEntry{
		{Name: "cat", Wdf: 1, PositionCount: 0},
		{Name: "dog", Wdf: 1, PositionCount: 1},
	}, got)
}

func TestDatabase_IndexAndSearch(t *testing.T) {
	e := newEngine(t)
	dir := filepath.Join(t.TempDir(), "db")

	db, err := e.OpenWritableDatabase(dir, domain.DBCreateOrOpen)
	require.NoError(t, err)
	defer db.Close()

	st, err := e.NewStemmer("english")
	require.NoError(t, err)
	defer st.Close()
	assert.Equal(t, "run", st.Stem("running"))

	doc := e.NewDocument()
	defer doc.Close()
	g := e.NewTermGenerator()
	defer g.Close()
	g.SetDocument(doc)
	g.IndexText("The quick fox", 1, "")
	doc.SetData("payload")

	id, err := db.ReplaceDocument("Qone", doc)
	require.NoError(t, err)
	require.NoError(t, db.Commit())
	assert.Equal(t, uint32(1), db.DocCount())

	q := e.NewQuery("fox")
	defer q.Close()
	assert.Equal(t, "Query(fox)", q.Describe())

	enq, err := e.NewEnquire(db)
	require.NoError(t, err)
	defer enq.Close()
	enq.SetQuery(q)
	ms, err := enq.MSet(0, 10)
	require.NoError(t, err)
	defer ms.Close()
	require.Equal(t, 1, ms.Size())

	it := ms.Begin()
	defer it.Close()
	assert.Equal(t, id, it.Get().DocID)
}

func TestOpenDatabase_Missing(t *testing.T) {
	_, err := newEngine(t).OpenDatabase(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, domain.ErrNativeFailure)
}

func TestNewStemmer_Unknown(t *testing.T) {
	_, err := newEngine(t).NewStemmer("klingon")
	var nerr *domain.NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "InvalidArgumentError")
}
