package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jlane/prodesc/internal/airtable"
)

// fakeStore is an in-memory stand-in for the Airtable client. ListRecords
// ignores the formula and returns every row in the table; the resolver's
// byte-equality re-check is expected to narrow the result.
type fakeStore struct {
	mu          sync.Mutex
	tables      map[string][]airtable.Record
	nextID      int
	clock       time.Time
	listErr     error
	createErr   error
	listCalls   map[string]int
	createCalls map[string]int

	// listBarrier, when set, is invoked at the start of every ListRecords
	// call. Tests use it to hold concurrent lookups open at the same time.
	listBarrier func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables:      make(map[string][]airtable.Record),
		clock:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		listCalls:   make(map[string]int),
		createCalls: make(map[string]int),
	}
}

// seed inserts a row with a fixed ID and the next creation timestamp.
func (f *fakeStore) seed(table, id string, fields map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Minute)
	f.tables[table] = append(f.tables[table], airtable.Record{
		ID:          id,
		CreatedTime: f.clock,
		Fields:      fields,
	})
}

func (f *fakeStore) ListRecords(ctx context.Context, table, filterByFormula string) ([]airtable.Record, error) {
	if f.listBarrier != nil {
		f.listBarrier()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls[table]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]airtable.Record, len(f.tables[table]))
	copy(out, f.tables[table])
	return out, nil
}

func (f *fakeStore) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) (*airtable.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls[table]++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	rec := airtable.Record{
		ID:          fmt.Sprintf("rec%03d", f.nextID),
		CreatedTime: f.clock,
		Fields:      fields,
	}
	f.tables[table] = append(f.tables[table], rec)
	return &rec, nil
}

func (f *fakeStore) records(table string) []airtable.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]airtable.Record, len(f.tables[table]))
	copy(out, f.tables[table])
	return out
}
