package ponto

import (
	"sort"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
)

// PutMode selects how Put combines new rows with a partition.
type PutMode int

const (
	// Merge combines with existing rows; on key collision the new row wins.
	Merge PutMode = iota
	// Replace clears the partition before inserting. Replacing the
	// "all" partition of a date also drops every group partition for
	// that date so derived filters cannot go stale.
	Replace
)

// Cache stores attendance records partitioned by (date, escala key).
// The "all" partition of a date, once populated, is the superset merge
// of every group partition of that date.
type Cache struct {
	mu         sync.Mutex
	partitions *gocache.Cache
	escalas    map[string][]string // date → duty-group labels seen for it
}

func NewCache() *Cache {
	return &Cache{
		partitions: gocache.New(gocache.NoExpiration, 0),
		escalas:    map[string][]string{},
	}
}

func partitionKey(date, escalaKey string) string {
	return date + "|" + escalaKey
}

// Get returns the cached rows for a (date, group) pair. A group
// partition absent from the cache is derived by filtering the "all"
// partition and memoized. A never-populated partition reads as empty.
func (c *Cache) Get(date, escalaKey string) []ponto.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(date, escalaKey)
}

func (c *Cache) getLocked(date, escalaKey string) []ponto.Record {
	if rows, found := c.partitions.Get(partitionKey(date, escalaKey)); found {
		return rows.([]ponto.Record)
	}
	if escalaKey == ponto.EscalaKeyAll {
		return nil
	}
	all, found := c.partitions.Get(partitionKey(date, ponto.EscalaKeyAll))
	if !found {
		return nil
	}
	var filtered []ponto.Record
	for _, row := range all.([]ponto.Record) {
		if row.EscalaKey == escalaKey {
			filtered = append(filtered, row)
		}
	}
	c.partitions.Set(partitionKey(date, escalaKey), filtered, gocache.NoExpiration)
	return filtered
}

// Put stores rows into a partition and keeps the "all" partition of
// the date a union of everything known for it.
func (c *Cache) Put(date, escalaKey string, rows []ponto.Record, mode PutMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := partitionKey(date, escalaKey)
	if mode == Replace {
		if escalaKey == ponto.EscalaKeyAll {
			c.dropDateLocked(date)
			c.partitions.Set(key, rows, gocache.NoExpiration)
			c.noteEscalasLocked(date, rows)
			return
		}
		c.partitions.Set(key, rows, gocache.NoExpiration)
	} else {
		existing, _ := c.partitions.Get(key)
		prior, _ := existing.([]ponto.Record)
		c.partitions.Set(key, mergeRecords(prior, rows), gocache.NoExpiration)
	}

	if escalaKey != ponto.EscalaKeyAll {
		allKey := partitionKey(date, ponto.EscalaKeyAll)
		existing, _ := c.partitions.Get(allKey)
		prior, _ := existing.([]ponto.Record)
		c.partitions.Set(allKey, mergeRecords(prior, rows), gocache.NoExpiration)
	}
	c.noteEscalasLocked(date, rows)
}

// Has reports whether a (date, group) read can be answered without a
// remote fetch, directly or derived from the "all" partition.
func (c *Cache) Has(date, escalaKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.partitions.Get(partitionKey(date, escalaKey)); found {
		return true
	}
	if escalaKey == ponto.EscalaKeyAll {
		return false
	}
	_, found := c.partitions.Get(partitionKey(date, ponto.EscalaKeyAll))
	return found
}

// Invalidate drops every partition for a date.
func (c *Cache) Invalidate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropDateLocked(date)
}

func (c *Cache) dropDateLocked(date string) {
	prefix := date + "|"
	for key := range c.partitions.Items() {
		if strings.HasPrefix(key, prefix) {
			c.partitions.Delete(key)
		}
	}
}

// Dates lists every date with cached rows, newest first.
func (c *Cache) Dates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := map[string]bool{}
	var dates []string
	for key := range c.partitions.Items() {
		date, _, ok := strings.Cut(key, "|")
		if !ok || seen[date] {
			continue
		}
		seen[date] = true
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// EscalasFor lists the duty-group labels seen for a date.
func (c *Cache) EscalasFor(date string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.escalas[date]...)
}

func (c *Cache) noteEscalasLocked(date string, rows []ponto.Record) {
	known := map[string]bool{}
	for _, label := range c.escalas[date] {
		known[normalize.Fold(label)] = true
	}
	for _, row := range rows {
		if row.Escala == "" {
			continue
		}
		folded := normalize.Fold(row.Escala)
		if known[folded] {
			continue
		}
		known[folded] = true
		c.escalas[date] = append(c.escalas[date], row.Escala)
	}
}

// mergeRecords combines two ordered row lists under the record
// de-duplication key. Order of first appearance is preserved; the most
// recent write wins a key collision.
func mergeRecords(base, additions []ponto.Record) []ponto.Record {
	index := map[string]int{}
	merged := make([]ponto.Record, 0, len(base)+len(additions))
	for _, list := range [][]ponto.Record{base, additions} {
		for _, row := range list {
			key := row.Key()
			if at, seen := index[key]; seen {
				merged[at] = row
				continue
			}
			index[key] = len(merged)
			merged = append(merged, row)
		}
	}
	return merged
}
