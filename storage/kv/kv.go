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

// Package kv defines the key-value storage the auditor persists to:
// the leaf archive of a ledger, its last trusted checkpoint and
// compact tree snapshots. Implementations must make every write
// synchronous and atomic.
package kv

import "errors"

// DB is an ordered key-value store. After Put(k, v) or a Write of a
// batch containing it has returned, Get(k) must return v even across
// a crash or restart. Batches are applied all-or-nothing, which is
// what keeps a leaf and the archive size in step.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	NewBatch() Batch
	Write(Batch) error
	NewIterator(*Range) Iterator
	Close() error

	// ErrNotFound returns the error Get reports for a missing key.
	ErrNotFound() error
}

// A Batch collects Put-s and Delete-s to be applied by DB.Write.
type Batch interface {
	Reset()
	Put(key, value []byte)
	Delete(key []byte)
}

// Iterator walks the entries of a Range in key order. Error may be
// called after Release.
type Iterator interface {
	Key() []byte
	Value() []byte
	First() bool
	Next() bool
	Last() bool
	Release()
	Error() error
}

// IsNotFound reports whether err is db's missing-key error.
func IsNotFound(db DB, err error) bool {
	return err != nil && errors.Is(err, db.ErrNotFound())
}
