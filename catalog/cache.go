// Copyright 2026 The CSV Relic Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/csvrelic/queryengine/value"
)

var statsBucket = []byte("table_statistics")

// statsCache persists TableStatistics in a local bolt database, keyed
// by source path plus a (size, mtime) fingerprint, so Loader.Load
// stays idempotent and deterministic across process restarts, not
// just within one (SPEC_FULL item 2).
type statsCache struct {
	db *bolt.DB
}

func openStatsCache(path string) (*statsCache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(statsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &statsCache{db: db}, nil
}

func (c *statsCache) Close() error {
	return c.db.Close()
}

func cacheKey(path string, size, mtimeNanos int64) []byte {
	return []byte(fmt.Sprintf("%s|%d|%d", path, size, mtimeNanos))
}

func (c *statsCache) get(path string) (TableStatistics, bool, error) {
	size, mtime, err := fileFingerprint(path)
	if err != nil {
		// The source may not exist yet at statistics-planning time
		// (SPEC_FULL item 3's YAML override covers that case); treat
		// as a cache miss rather than a fatal error.
		return TableStatistics{}, false, nil
	}

	key := cacheKey(path, size, mtime)
	var wire tableStatisticsWire
	found := false
	err = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(statsBucket)
		data := b.Get(key)
		if data == nil {
			return nil
		}
		found = true
		return gob.NewDecoder(bytes.NewReader(data)).Decode(&wire)
	})
	if err != nil {
		return TableStatistics{}, false, err
	}
	if !found {
		return TableStatistics{}, false, nil
	}
	return wire.toStats(), true, nil
}

func (c *statsCache) put(path string, stats TableStatistics) error {
	size, mtime, err := fileFingerprint(path)
	if err != nil {
		return err
	}
	key := cacheKey(path, size, mtime)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wireFromStats(stats)); err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(statsBucket)
		return b.Put(key, buf.Bytes())
	})
}

// tableStatisticsWire is the gob-serializable mirror of
// TableStatistics; value.Value's fields are unexported, so the cache
// goes through value.Raw/FromRaw. The YAML override loader has its own
// shape and parses min/max with value.ParseCell.
type tableStatisticsWire struct {
	RowCount uint64
	Columns  map[string]columnStatisticsWire
}

type columnStatisticsWire struct {
	MinKind, MaxKind          value.Kind
	MinI, MaxI                int64
	MinF, MaxF                float64
	MinS, MaxS                string
	Distinct                  uint64
	Histogram                 []uint64
}

func wireFromStats(stats TableStatistics) tableStatisticsWire {
	cols := make(map[string]columnStatisticsWire, len(stats.Columns))
	for name, cs := range stats.Columns {
		minKind, minI, minF, minS := cs.Min.Raw()
		maxKind, maxI, maxF, maxS := cs.Max.Raw()
		cols[name] = columnStatisticsWire{
			MinKind: minKind, MinI: minI, MinF: minF, MinS: minS,
			MaxKind: maxKind, MaxI: maxI, MaxF: maxF, MaxS: maxS,
			Distinct:  cs.Distinct,
			Histogram: cs.Histogram,
		}
	}
	return tableStatisticsWire{RowCount: stats.RowCount, Columns: cols}
}

func (w tableStatisticsWire) toStats() TableStatistics {
	cols := make(map[string]ColumnStatistics, len(w.Columns))
	for name, cw := range w.Columns {
		cols[name] = ColumnStatistics{
			Min:       value.FromRaw(cw.MinKind, cw.MinI, cw.MinF, cw.MinS),
			Max:       value.FromRaw(cw.MaxKind, cw.MaxI, cw.MaxF, cw.MaxS),
			Distinct:  cw.Distinct,
			Histogram: cw.Histogram,
		}
	}
	return TableStatistics{RowCount: w.RowCount, Columns: cols}
}
