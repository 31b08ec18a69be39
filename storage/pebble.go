package storage

import (
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
)

// Config configures a Pebble-backed Backend. Adapted from quasar's
// db.go (OpenDB), extended with the read-transaction bound and max key size
// that PumpkinDB's core needs to enforce.
type Config struct {
	// Directory is where the database files live.
	Directory string

	// MaxReadTransactions bounds the number of concurrent read
	// transactions, per spec §3's documented implementation limit.
	// Defaults to 126.
	MaxReadTransactions int

	// MaxKeySize bounds the size of keys accepted by ASSOC, reported via
	// $SYSTEM/MAXKEYSIZE. Defaults to 8192. Put itself does not check it.
	MaxKeySize int
}

func (c *Config) setDefaults() {
	if c.MaxReadTransactions <= 0 {
		c.MaxReadTransactions = 126
	}
	if c.MaxKeySize <= 0 {
		c.MaxKeySize = 8192
	}
}

// Pebble is a Backend implementation over cockroachdb/pebble, enforcing a
// single writer and a bounded pool of readers exactly as spec.md requires.
type Pebble struct {
	db     *pebble.DB
	config Config

	writeMutex sync.Mutex
	readSlots  chan struct{}
}

// Open will open or create the database at the configured directory,
// mirroring quasar's OpenDB.
func Open(config Config) (*Pebble, error) {
	config.setDefaults()

	if config.Directory == "" {
		panic("storage: missing directory")
	}

	if err := os.MkdirAll(config.Directory, 0777); err != nil {
		return nil, err
	}

	db, err := pebble.Open(config.Directory, &pebble.Options{})
	if err != nil {
		return nil, err
	}

	return &Pebble{
		db:        db,
		config:    config,
		readSlots: make(chan struct{}, config.MaxReadTransactions),
	}, nil
}

// MaxKeySize implements Backend.
func (p *Pebble) MaxKeySize() int {
	return p.config.MaxKeySize
}

// Close implements Backend.
func (p *Pebble) Close() error {
	return p.db.Close()
}

// BeginWrite implements Backend. Only one write transaction exists in the
// whole process at any time, enforced by writeMutex.
func (p *Pebble) BeginWrite() (Txn, error) {
	p.writeMutex.Lock()

	batch := p.db.NewIndexedBatch()

	return &pebbleTxn{
		backend:  p,
		writable: true,
		batch:    batch,
	}, nil
}

// BeginRead implements Backend, bounded by MaxReadTransactions.
func (p *Pebble) BeginRead() (Txn, error) {
	p.readSlots <- struct{}{}

	snap := p.db.NewSnapshot()

	return &pebbleTxn{
		backend:  p,
		writable: false,
		snapshot: snap,
	}, nil
}

// reader abstracts over pebble.Batch and pebble.Snapshot, both of which
// expose Get/NewIter with the same signature.
type reader interface {
	Get(key []byte) ([]byte, io.Closer, error)
	NewIter(o *pebble.IterOptions) *pebble.Iterator
}

type pebbleTxn struct {
	backend  *Pebble
	writable bool

	batch    *pebble.Batch
	snapshot *pebble.Snapshot

	mutex sync.Mutex
	done  bool
}

func (t *pebbleTxn) Writable() bool { return t.writable }

func (t *pebbleTxn) rd() reader {
	if t.writable {
		return t.batch
	}
	return t.snapshot
}

func (t *pebbleTxn) Get(key []byte) ([]byte, bool, error) {
	value, closer, err := t.rd().Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	out := append([]byte(nil), value...)
	_ = closer.Close()
	return out, true, nil
}

func (t *pebbleTxn) Put(key, value []byte) error {
	if !t.writable {
		return ErrNotWritable
	}

	_, ok, err := t.Get(key)
	if err != nil {
		return err
	}
	if ok {
		return ErrDuplicateKey
	}

	return t.batch.Set(key, value, nil)
}

func (t *pebbleTxn) Cursor() (Cursor, error) {
	iter := t.rd().NewIter(&pebble.IterOptions{})
	return &pebbleCursor{iter: iter}, nil
}

func (t *pebbleTxn) Commit() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.done {
		return ErrTxnFinished
	}
	t.done = true

	if t.writable {
		defer t.backend.writeMutex.Unlock()
		return t.batch.Commit(pebble.NoSync)
	}

	defer func() { <-t.backend.readSlots }()
	return t.snapshot.Close()
}

func (t *pebbleTxn) Rollback() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.done {
		return nil
	}
	t.done = true

	if t.writable {
		defer t.backend.writeMutex.Unlock()
		return t.batch.Close()
	}

	defer func() { <-t.backend.readSlots }()
	return t.snapshot.Close()
}

type pebbleCursor struct {
	iter *pebble.Iterator
}

func (c *pebbleCursor) First() bool          { return c.iter.First() }
func (c *pebbleCursor) Last() bool           { return c.iter.Last() }
func (c *pebbleCursor) Next() bool           { return c.iter.Next() }
func (c *pebbleCursor) Prev() bool           { return c.iter.Prev() }
func (c *pebbleCursor) SeekGE(key []byte) bool { return c.iter.SeekGE(key) }
func (c *pebbleCursor) SeekLT(key []byte) bool { return c.iter.SeekLT(key) }
func (c *pebbleCursor) Valid() bool          { return c.iter.Valid() }
func (c *pebbleCursor) Key() []byte          { return c.iter.Key() }
func (c *pebbleCursor) Value() []byte        { return c.iter.Value() }
func (c *pebbleCursor) Close() error         { return c.iter.Close() }
