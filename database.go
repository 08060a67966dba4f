package jdb

import (
	"context"
	"io"
	"iter"
	"maps"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/jdb/blobstore"
	"github.com/hupe1980/jdb/internal/format"
	"github.com/hupe1980/jdb/resource"
)

// noCopy may be embedded into structs which must not be copied after first
// use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Database is a fully loaded and validated snapshot.
//
// It is immutable and safe for concurrent readers. It must not be copied.
type Database struct {
	noCopy noCopy

	header format.Header
	size   int64
	read   int64

	apps, comps, joins []Eqn

	grammar grammar
	names   nameTable

	atoms *roaring.Bitmap
	basis *roaring.Bitmap

	rc       *resource.Controller
	reserved atomic.Int64
}

// Open loads the snapshot at path through a memory-mapped local store.
func Open(ctx context.Context, path string, opts ...Option) (*Database, error) {
	store := blobstore.NewLocalStore(filepath.Dir(path))
	return OpenBlob(ctx, store, filepath.Base(path), opts...)
}

// OpenBlob loads the snapshot stored under name in store.
func OpenBlob(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Database, error) {
	o := applyOptions(opts)
	return load(ctx, o, name, func() (blobstore.Blob, error) {
		return store.Open(ctx, name)
	})
}

// Load loads a snapshot of size bytes from r. The caller keeps ownership of r.
func Load(ctx context.Context, r io.ReaderAt, size int64, opts ...Option) (*Database, error) {
	o := applyOptions(opts)
	return load(ctx, o, "", func() (blobstore.Blob, error) {
		return blobstore.NewReaderAtBlob(r, size), nil
	})
}

func load(ctx context.Context, o *options, name string, open func() (blobstore.Blob, error)) (db *Database, err error) {
	start := time.Now()
	src := &source{ctx: ctx, rc: o.rc}
	o.logger.LogLoadStart(ctx, name)

	defer func() {
		if err != nil {
			db = nil
			o.rc.ReleaseMemory(src.reserved)
		}
		stats := Stats{Size: src.size(), BytesRead: src.read}
		if db != nil {
			stats = db.Stats()
		}
		elapsed := time.Since(start)
		o.metrics.RecordLoad(stats, elapsed, err)
		o.logger.LogLoad(ctx, name, stats, elapsed, err)
	}()

	blob, err := open()
	if err != nil {
		return nil, &IOError{Op: "open", Section: SectionFile, Err: err}
	}
	src.blob = blob

	defer func() {
		if cerr := blob.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Section: SectionFile, Err: cerr}
		}
	}()

	return decode(ctx, src, o)
}

// decode runs the load sequence over an open source.
func decode(ctx context.Context, src *source, o *options) (*Database, error) {
	h, err := readHeader(src)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(h.Version); err != nil {
		return nil, err
	}
	if err := validateHeader(h); err != nil {
		return nil, err
	}

	db := &Database{header: h, size: src.size(), rc: o.rc}
	obCount := int(h.ObSize)

	observe := func(section Section, records int, start time.Time) {
		elapsed := time.Since(start)
		o.metrics.RecordSection(section, records, elapsed)
		o.logger.LogSection(ctx, section, records, elapsed)
	}

	tables := []struct {
		section Section
		block   uint32
		count   uint32
		dst     *[]Eqn
	}{
		{SectionApp, h.AppBlock, h.AppSize, &db.apps},
		{SectionComp, h.CompBlock, h.CompSize, &db.comps},
		{SectionJoin, h.JoinBlock, h.JoinSize, &db.joins},
	}
	for _, t := range tables {
		start := time.Now()
		eqns, err := loadEquations(src, t.section, t.block, t.count, obCount)
		if err != nil {
			return nil, err
		}
		*t.dst = eqns
		observe(t.section, len(eqns), start)
	}

	start := time.Now()
	if db.grammar, err = loadGrammar(src, h); err != nil {
		return nil, err
	}
	observe(SectionGrammar, len(db.grammar.atomProbs), start)

	start = time.Now()
	if db.names, err = loadNames(src, h); err != nil {
		return nil, err
	}
	observe(SectionNames, len(db.names.byName), start)

	db.atoms = roaring.New()
	for ob := range db.grammar.atomProbs {
		db.atoms.Add(uint32(ob))
	}
	db.basis = roaring.New()
	for ob := range db.names.byOb {
		db.basis.Add(uint32(ob))
	}
	db.atoms.RunOptimize()
	db.basis.RunOptimize()

	db.read = src.read
	db.reserved.Store(src.reserved)
	return db, nil
}

// Release returns the memory reserved for db to its resource controller.
// The data stays readable. Release is idempotent.
func (db *Database) Release() {
	db.rc.ReleaseMemory(db.reserved.Swap(0))
}

// ObCount returns the number of obs. Valid ids are 1..ObCount.
func (db *Database) ObCount() int { return int(db.header.ObSize) }

// AppCount returns the number of application equations.
func (db *Database) AppCount() int { return len(db.apps) }

// CompCount returns the number of composition equations.
func (db *Database) CompCount() int { return len(db.comps) }

// JoinCount returns the number of join equations.
func (db *Database) JoinCount() int { return len(db.joins) }

// Apps iterates over the application equations in file order.
func (db *Database) Apps() iter.Seq[Eqn] { return slices.Values(db.apps) }

// Comps iterates over the composition equations in file order.
func (db *Database) Comps() iter.Seq[Eqn] { return slices.Values(db.comps) }

// Joins iterates over the join equations in file order.
func (db *Database) Joins() iter.Seq[Eqn] { return slices.Values(db.joins) }

// App returns the i-th application equation. It panics if i is out of range.
func (db *Database) App(i int) Eqn { return db.apps[i] }

// Comp returns the i-th composition equation. It panics if i is out of range.
func (db *Database) Comp(i int) Eqn { return db.comps[i] }

// Join returns the i-th join equation. It panics if i is out of range.
func (db *Database) Join(i int) Eqn { return db.joins[i] }

// AppProb returns the probability of an application node.
func (db *Database) AppProb() float64 { return db.grammar.app }

// CompProb returns the probability of a composition node.
func (db *Database) CompProb() float64 { return db.grammar.comp }

// JoinProb returns the probability of a join node.
func (db *Database) JoinProb() float64 { return db.grammar.join }

// AtomProb returns 1 - (AppProb + CompProb + JoinProb).
func (db *Database) AtomProb() float64 { return db.grammar.atom }

// ObProb returns the probability of ob as an atom, or 0 if it has none.
func (db *Database) ObProb(ob Ob) float64 { return db.grammar.atomProbs[ob] }

// AtomProbs iterates over the weighted atoms in ascending ob order.
func (db *Database) AtomProbs() iter.Seq2[Ob, float64] {
	return func(yield func(Ob, float64) bool) {
		for _, ob := range slices.Sorted(maps.Keys(db.grammar.atomProbs)) {
			if !yield(ob, db.grammar.atomProbs[ob]) {
				return
			}
		}
	}
}

// WeightCount returns the number of distinct weighted atoms.
func (db *Database) WeightCount() int { return len(db.grammar.atomProbs) }

// Lookup returns the ob named name, or 0 if there is none.
func (db *Database) Lookup(name string) Ob { return db.names.byName[name] }

// Name returns the first name read for ob.
func (db *Database) Name(ob Ob) (string, bool) {
	name, ok := db.names.byOb[ob]
	return name, ok
}

// Names iterates over all names in ascending order.
func (db *Database) Names() iter.Seq2[string, Ob] {
	return func(yield func(string, Ob) bool) {
		for _, name := range slices.Sorted(maps.Keys(db.names.byName)) {
			if !yield(name, db.names.byName[name]) {
				return
			}
		}
	}
}

// NameCount returns the number of names.
func (db *Database) NameCount() int { return len(db.names.byName) }

// Atoms returns a copy of the set of weighted atoms.
func (db *Database) Atoms() *roaring.Bitmap { return db.atoms.Clone() }

// Basis returns a copy of the set of named obs.
func (db *Database) Basis() *roaring.Bitmap { return db.basis.Clone() }

// Version returns the producer version of the snapshot.
func (db *Database) Version() Version { return db.header.Version }

// Age returns the age of the knowledge base.
func (db *Database) Age() uint64 { return db.header.Age }

// Props returns the two generic header properties.
func (db *Database) Props() (uint32, uint32) { return db.header.Props1, db.header.Props2 }

// Stats returns the counts and byte sizes of the load.
func (db *Database) Stats() Stats {
	return Stats{
		ObCount:     db.ObCount(),
		AppCount:    db.AppCount(),
		CompCount:   db.CompCount(),
		JoinCount:   db.JoinCount(),
		WeightCount: db.WeightCount(),
		NameCount:   db.NameCount(),
		Size:        db.size,
		BytesRead:   db.read,
		MemoryBytes: db.reserved.Load(),
	}
}
