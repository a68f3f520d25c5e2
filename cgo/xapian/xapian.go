//go:build cgo && xapian

package xapian

/*
#cgo pkg-config: xapian-core
#cgo CXXFLAGS: -std=c++17

#include "xapian_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.Engine = (*Engine)(nil)

// Engine drives libxapian.
type Engine struct {
	version string
}

// New creates a libxapian engine.
func New() (*Engine, error) {
	return &Engine{version: C.GoString(C.xap_version())}, nil
}

// Name reports the linked library version, e.g. "xapian 1.4.22".
func (e *Engine) Name() string {
	return "xapian " + e.version
}

// cString is a C copy of a Go string with its byte length.
type cString struct {
	p *C.char
	n C.size_t
}

func newCString(s string) cString {
	return cString{p: C.CString(s), n: C.size_t(len(s))}
}

func (c cString) free() {
	C.free(unsafe.Pointer(c.p))
}

// takeString copies and frees a malloc'd string returned by the shim.
func takeString(p *C.char, n C.size_t) string {
	if p == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(p))
	return C.GoStringN(p, C.int(n))
}

// takeError converts and frees a shim error message.
func takeError(op string, cerr *C.char) error {
	if cerr == nil {
		return nil
	}
	defer C.free(unsafe.Pointer(cerr))
	return &domain.NativeError{Op: op, Message: C.GoString(cerr)}
}

// must panics with a native error raised where the port has no error return.
func must(op string, cerr *C.char) {
	if err := takeError(op, cerr); err != nil {
		panic(err)
	}
}

// OpenDatabase opens a database read-only.
func (e *Engine) OpenDatabase(path string) (driven.Database, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var cerr *C.char
	db := C.xap_db_open(cpath, &cerr)
	if err := takeError("open database", cerr); err != nil {
		return nil, err
	}
	return &database{p: db}, nil
}

// OpenWritableDatabase opens or creates a database for writing.
func (e *Engine) OpenWritableDatabase(path string, action domain.DBAction) (driven.WritableDatabase, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var cerr *C.char
	db := C.xap_wdb_open(cpath, C.int(action), &cerr)
	if err := takeError("open writable database", cerr); err != nil {
		return nil, err
	}
	return &database{p: db, writable: true}, nil
}

// NewDocument allocates an empty document.
func (e *Engine) NewDocument() driven.Document {
	return &document{p: C.xap_doc_new()}
}

// NewQuery creates a single-term query.
func (e *Engine) NewQuery(term string) driven.Query {
	cs := newCString(term)
	defer cs.free()
	return &query{p: C.xap_query_new(cs.p, cs.n)}
}

// CombineQueries joins two queries; libxapian copies the operands.
func (e *Engine) CombineQueries(op domain.QueryOp, a, b driven.Query) (driven.Query, error) {
	qa, okA := a.(*query)
	qb, okB := b.(*query)
	if !okA || !okB {
		return nil, fmt.Errorf("xapian: %w", domain.ErrEngineMismatch)
	}
	var cerr *C.char
	q := C.xap_query_combine(C.int(op), qa.native(), qb.native(), &cerr)
	if err := takeError("combine queries", cerr); err != nil {
		return nil, err
	}
	return &query{p: q}, nil
}

// NewEnquire creates a query-execution context over db.
func (e *Engine) NewEnquire(db driven.Database) (driven.Enquire, error) {
	d, ok := db.(*database)
	if !ok {
		return nil, fmt.Errorf("xapian: %w", domain.ErrEngineMismatch)
	}
	var cerr *C.char
	enq := C.xap_enquire_new(d.native(), &cerr)
	if err := takeError("create enquire", cerr); err != nil {
		return nil, err
	}
	return &enquire{p: enq}, nil
}

// NewStemmer creates a stemmer for a libxapian language code.
func (e *Engine) NewStemmer(language string) (driven.Stemmer, error) {
	clang := C.CString(language)
	defer C.free(unsafe.Pointer(clang))

	var cerr *C.char
	s := C.xap_stem_new(clang, &cerr)
	if err := takeError("create stemmer", cerr); err != nil {
		return nil, err
	}
	return &stemmer{p: s}, nil
}

// NewTermGenerator creates a term generator.
func (e *Engine) NewTermGenerator() driven.TermGenerator {
	return &termGenerator{p: C.xap_termgen_new()}
}

type database struct {
	p        *C.xap_db
	writable bool
}

func (d *database) native() *C.xap_db {
	if d.p == nil {
		panic("xapian: use of closed database")
	}
	return d.p
}

func (d *database) DocCount() uint32 {
	var cerr *C.char
	n := C.xap_db_doccount(d.native(), &cerr)
	must("get doccount", cerr)
	return uint32(n)
}

func (d *database) UUID() string {
	var cerr *C.char
	var n C.size_t
	p := C.xap_db_uuid(d.native(), &n, &cerr)
	must("get uuid", cerr)
	return takeString(p, n)
}

func (d *database) Document(id domain.DocumentID) (driven.Document, error) {
	var cerr *C.char
	doc := C.xap_db_document(d.native(), C.uint(id), &cerr)
	if err := takeError("get document", cerr); err != nil {
		return nil, err
	}
	return &document{p: doc}, nil
}

func (d *database) AllTermsBegin(prefix string) driven.TermCursor {
	cs := newCString(prefix)
	defer cs.free()
	var cerr *C.char
	it := C.xap_db_allterms_begin(d.native(), cs.p, cs.n, &cerr)
	must("allterms begin", cerr)
	return &termCursor{p: it}
}

func (d *database) AllTermsEnd(prefix string) driven.TermCursor {
	cs := newCString(prefix)
	defer cs.free()
	var cerr *C.char
	it := C.xap_db_allterms_end(d.native(), cs.p, cs.n, &cerr)
	must("allterms end", cerr)
	return &termCursor{p: it}
}

func (d *database) checkWritable(op string) error {
	d.native()
	if !d.writable {
		return &domain.NativeError{Op: op, Message: "InvalidOperationError: database is read-only"}
	}
	return nil
}

func (d *database) AddDocument(doc driven.Document) (domain.DocumentID, error) {
	if err := d.checkWritable("add document"); err != nil {
		return 0, err
	}
	nd, ok := doc.(*document)
	if !ok {
		return 0, fmt.Errorf("xapian: %w", domain.ErrEngineMismatch)
	}
	var cerr *C.char
	id := C.xap_wdb_add(d.p, nd.native(), &cerr)
	if err := takeError("add document", cerr); err != nil {
		return 0, err
	}
	return domain.DocumentID(id), nil
}

func (d *database) ReplaceDocument(uniqueTerm string, doc driven.Document) (domain.DocumentID, error) {
	if err := d.checkWritable("replace document"); err != nil {
		return 0, err
	}
	nd, ok := doc.(*document)
	if !ok {
		return 0, fmt.Errorf("xapian: %w", domain.ErrEngineMismatch)
	}
	cs := newCString(uniqueTerm)
	defer cs.free()
	var cerr *C.char
	id := C.xap_wdb_replace(d.p, cs.p, cs.n, nd.native(), &cerr)
	if err := takeError("replace document", cerr); err != nil {
		return 0, err
	}
	return domain.DocumentID(id), nil
}

func (d *database) DeleteDocument(uniqueTerm string) error {
	if err := d.checkWritable("delete document"); err != nil {
		return err
	}
	cs := newCString(uniqueTerm)
	defer cs.free()
	var cerr *C.char
	C.xap_wdb_delete(d.p, cs.p, cs.n, &cerr)
	return takeError("delete document", cerr)
}

func (d *database) Commit() error {
	if err := d.checkWritable("commit"); err != nil {
		return err
	}
	var cerr *C.char
	C.xap_wdb_commit(d.p, &cerr)
	return takeError("commit", cerr)
}

// Close deletes the handle; libxapian commits a writable database on delete.
func (d *database) Close() {
	if d.p != nil {
		C.xap_db_free(d.p)
		d.p = nil
	}
}

type document struct {
	p *C.xap_doc
}

func (d *document) native() *C.xap_doc {
	if d.p == nil {
		panic("xapian: use of closed document")
	}
	return d.p
}

func (d *document) SetData(data string) {
	cs := newCString(data)
	defer cs.free()
	var cerr *C.char
	C.xap_doc_set_data(d.native(), cs.p, cs.n, &cerr)
	must("set data", cerr)
}

func (d *document) Data() string {
	var cerr *C.char
	var n C.size_t
	p := C.xap_doc_get_data(d.native(), &n, &cerr)
	must("get data", cerr)
	return takeString(p, n)
}

func (d *document) AddPosting(term string, pos domain.Position, wdfInc uint32) {
	cs := newCString(term)
	defer cs.free()
	var cerr *C.char
	C.xap_doc_add_posting(d.native(), cs.p, cs.n, C.uint(pos), C.uint(wdfInc), &cerr)
	must("add posting", cerr)
}

func (d *document) AddTerm(term string, wdfInc uint32) {
	cs := newCString(term)
	defer cs.free()
	var cerr *C.char
	C.xap_doc_add_term(d.native(), cs.p, cs.n, C.uint(wdfInc), &cerr)
	must("add term", cerr)
}

func (d *document) AddValue(slot domain.ValueNumber, value string) {
	cs := newCString(value)
	defer cs.free()
	var cerr *C.char
	C.xap_doc_add_value(d.native(), C.uint(slot), cs.p, cs.n, &cerr)
	must("add value", cerr)
}

func (d *document) TermsBegin() driven.TermCursor {
	var cerr *C.char
	it := C.xap_doc_terms_begin(d.native(), &cerr)
	must("termlist begin", cerr)
	return &termCursor{p: it}
}

func (d *document) TermsEnd() driven.TermCursor {
	var cerr *C.char
	it := C.xap_doc_terms_end(d.native(), &cerr)
	must("termlist end", cerr)
	return &termCursor{p: it}
}

func (d *document) ValuesBegin() driven.ValueCursor {
	var cerr *C.char
	it := C.xap_doc_values_begin(d.native(), &cerr)
	must("values begin", cerr)
	return &valueCursor{p: it}
}

func (d *document) ValuesEnd() driven.ValueCursor {
	var cerr *C.char
	it := C.xap_doc_values_end(d.native(), &cerr)
	must("values end", cerr)
	return &valueCursor{p: it}
}

func (d *document) Close() {
	if d.p != nil {
		C.xap_doc_free(d.p)
		d.p = nil
	}
}

type query struct {
	p *C.xap_query
}

func (q *query) native() *C.xap_query {
	if q.p == nil {
		panic("xapian: use of closed query")
	}
	return q.p
}

func (q *query) Describe() string {
	var n C.size_t
	p := C.xap_query_describe(q.native(), &n)
	return takeString(p, n)
}

func (q *query) Close() {
	if q.p != nil {
		C.xap_query_free(q.p)
		q.p = nil
	}
}

type enquire struct {
	p *C.xap_enquire
}

func (e *enquire) native() *C.xap_enquire {
	if e.p == nil {
		panic("xapian: use of closed enquire")
	}
	return e.p
}

func (e *enquire) SetQuery(q driven.Query) {
	nq, ok := q.(*query)
	if !ok {
		panic(fmt.Errorf("xapian: %w", domain.ErrEngineMismatch))
	}
	var cerr *C.char
	C.xap_enquire_set_query(e.native(), nq.native(), &cerr)
	must("set query", cerr)
}

func (e *enquire) MSet(first, maxItems int) (driven.MSet, error) {
	if first < 0 || maxItems < 0 {
		return nil, &domain.NativeError{Op: "get mset", Message: "InvalidArgumentError: negative mset bounds"}
	}
	var cerr *C.char
	m := C.xap_enquire_mset(e.native(), C.uint(first), C.uint(maxItems), &cerr)
	if err := takeError("get mset", cerr); err != nil {
		return nil, err
	}
	return &mset{p: m}, nil
}

func (e *enquire) Close() {
	if e.p != nil {
		C.xap_enquire_free(e.p)
		e.p = nil
	}
}

type mset struct {
	p *C.xap_mset
}

func (m *mset) native() *C.xap_mset {
	if m.p == nil {
		panic("xapian: use of closed mset")
	}
	return m.p
}

func (m *mset) Size() int {
	return int(C.xap_mset_size(m.native()))
}

func (m *mset) Begin() driven.MatchCursor {
	return &matchCursor{p: C.xap_mset_begin(m.native())}
}

func (m *mset) End() driven.MatchCursor {
	return &matchCursor{p: C.xap_mset_end(m.native())}
}

func (m *mset) Close() {
	if m.p != nil {
		C.xap_mset_free(m.p)
		m.p = nil
	}
}

type stemmer struct {
	p *C.xap_stem
}

func (s *stemmer) native() *C.xap_stem {
	if s.p == nil {
		panic("xapian: use of closed stemmer")
	}
	return s.p
}

func (s *stemmer) Stem(word string) string {
	cs := newCString(word)
	defer cs.free()
	var cerr *C.char
	var n C.size_t
	p := C.xap_stem_apply(s.native(), cs.p, cs.n, &n, &cerr)
	must("stem", cerr)
	return takeString(p, n)
}

func (s *stemmer) Describe() string {
	var n C.size_t
	p := C.xap_stem_describe(s.native(), &n)
	return takeString(p, n)
}

func (s *stemmer) Close() {
	if s.p != nil {
		C.xap_stem_free(s.p)
		s.p = nil
	}
}

type termGenerator struct {
	p *C.xap_termgen
}

func (g *termGenerator) native() *C.xap_termgen {
	if g.p == nil {
		panic("xapian: use of closed term generator")
	}
	return g.p
}

func (g *termGenerator) SetStemmer(s driven.Stemmer) {
	ns, ok := s.(*stemmer)
	if !ok {
		panic(fmt.Errorf("xapian: %w", domain.ErrEngineMismatch))
	}
	C.xap_termgen_set_stemmer(g.native(), ns.native())
}

func (g *termGenerator) SetDocument(doc driven.Document) {
	nd, ok := doc.(*document)
	if !ok {
		panic(fmt.Errorf("xapian: %w", domain.ErrEngineMismatch))
	}
	C.xap_termgen_set_document(g.native(), nd.native())
}

func (g *termGenerator) IndexText(text string, wdfInc uint32, prefix string) {
	ct := newCString(text)
	defer ct.free()
	cp := newCString(prefix)
	defer cp.free()
	var cerr *C.char
	C.xap_termgen_index_text(g.native(), ct.p, ct.n, C.uint(wdfInc), cp.p, cp.n, &cerr)
	must("index text", cerr)
}

func (g *termGenerator) Close() {
	if g.p != nil {
		C.xap_termgen_free(g.p)
		g.p = nil
	}
}
