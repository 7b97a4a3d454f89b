// Copyright 2014-2015 The Coname Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
// 	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package leveldbkv stores ledger records in a goleveldb database
// behind the kv interface.
package leveldbkv

import (
	"fmt"

	"github.com/credledger/credledger-go/storage/kv"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Options control how a database is opened. The zero value opens it
// for reading and writing, syncing every write to disk.
type Options struct {
	// NoSync skips the fsync after each write. Writes acknowledged
	// before a machine crash may be lost.
	NoSync bool
	// ReadOnly rejects every write with leveldb.ErrReadOnly.
	ReadOnly bool
}

type store struct {
	ldb   *leveldb.DB
	write *opt.WriteOptions
}

// OpenDB opens, or creates, the leveldb database at path with the
// default Options. The caller owns the returned DB and must Close it.
func OpenDB(path string) (kv.DB, error) {
	return Open(path, nil)
}

// Open opens the leveldb database at path. A nil opts means the
// default Options. Only a writable database is created if missing.
func Open(path string, opts *Options) (kv.DB, error) {
	if opts == nil {
		opts = new(Options)
	}
	ldb, err := leveldb.OpenFile(path, &opt.Options{
		ReadOnly:       opts.ReadOnly,
		ErrorIfMissing: opts.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("leveldbkv: open %s: %w", path, err)
	}
	return wrap(ldb, opts), nil
}

// Wrap uses an open leveldb.DB as a kv.DB, syncing every write.
func Wrap(ldb *leveldb.DB) kv.DB {
	return wrap(ldb, new(Options))
}

func wrap(ldb *leveldb.DB, opts *Options) *store {
	return &store{ldb: ldb, write: &opt.WriteOptions{Sync: !opts.NoSync}}
}

func (s *store) Get(key []byte) ([]byte, error) {
	return s.ldb.Get(key, nil)
}

func (s *store) Put(key, value []byte) error {
	return s.ldb.Put(key, value, s.write)
}

func (s *store) Delete(key []byte) error {
	return s.ldb.Delete(key, s.write)
}

func (s *store) NewBatch() kv.Batch {
	return new(leveldb.Batch)
}

// Write applies the batch atomically. b must come from NewBatch.
func (s *store) Write(b kv.Batch) error {
	wb, ok := b.(*leveldb.Batch)
	if !ok {
		return fmt.Errorf("leveldbkv: cannot write a %T batch", b)
	}
	return s.ldb.Write(wb, s.write)
}

func (s *store) NewIterator(rg *kv.Range) kv.Iterator {
	if rg == nil {
		return s.ldb.NewIterator(nil, nil)
	}
	return s.ldb.NewIterator(&util.Range{Start: rg.Start, Limit: rg.Limit}, nil)
}

func (s *store) Close() error {
	return s.ldb.Close()
}

func (s *store) ErrNotFound() error {
	return leveldb.ErrNotFound
}
