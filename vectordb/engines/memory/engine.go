package memory

import (
	"context"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	"cenone/vectordb"
)

// Engine implements vectordb.Engine with in-memory storage. It provides
// thread-safe collection management and vector similarity search without an
// external database, which makes it the engine of choice for tests.
type Engine struct {
	// collections stores all vector collections in memory
	collections *sync.Map
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

// Collection represents a named set of records.
type Collection struct {
	// records holds the actual records in the collection
	records []vectordb.Record
	// mu provides thread-safety for concurrent operations
	mu sync.RWMutex
}

func (c *Collection) AddRecords(records ...vectordb.Record) {
	c.mu.Lock()
	c.records = append(c.records, records...)
	c.mu.Unlock()
}

func (c *Collection) Records() []vectordb.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]vectordb.Record, len(c.records))
	copy(out, c.records)
	return out
}

// New creates a new in-memory vector database instance.
func New(opts ...vectordb.Option) (*Engine, error) {
	ret := &Engine{
		collections: new(sync.Map),
	}
	vectordb.WithEngine(vectordb.Memory)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret, nil
}

// Collection returns the named collection, creating it if needed.
func (e *Engine) Collection(_ context.Context, name string) (*Collection, error) {
	col, _ := e.collections.LoadOrStore(name, new(Collection))
	return col.(*Collection), nil
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return err
	}
	docs := make([]vectordb.Record, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		docs = append(docs, record)
	}
	col.AddRecords(docs...)
	return nil
}

func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	col, err := e.Collection(ctx, option.Collection)
	if err != nil {
		return nil, err
	}
	records := filterRecords(col.Records(), &option)
	for idx, record := range records {
		records[idx].Score = cosineSimilarity(vectors, record.Embedding.Embedding)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if e.MinScore > 0 {
		kept := records[:0]
		for _, record := range records {
			if record.Score >= e.MinScore {
				kept = append(kept, record)
			}
		}
		records = kept
	}
	if option.TopK == 0 {
		option.TopK = e.TopK
	}
	if option.TopK == 0 || option.TopK > len(records) {
		option.TopK = len(records)
	}
	return records[:option.TopK], nil
}

func (e *Engine) Get(ctx context.Context, collectionName string, id string) (*vectordb.Record, error) {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	for _, record := range col.Records() {
		if record.ID == id {
			return &record, nil
		}
	}
	return nil, nil
}

func (e *Engine) Count(ctx context.Context, collectionName string) (int, error) {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return 0, err
	}
	return len(col.Records()), nil
}

func (e *Engine) Drop(_ context.Context, collectionName string) error {
	e.collections.Delete(collectionName)
	return nil
}

// filterRecords filters records by metadata and content, concurrently.
func filterRecords(docs []vectordb.Record, opts *vectordb.SearchOptions) []vectordb.Record {
	filteredDocs := make([]vectordb.Record, 0, len(docs))
	filteredDocsLock := sync.Mutex{}

	numCPUs := runtime.NumCPU()
	numDocs := len(docs)
	concurrency := min(numCPUs, numDocs)

	docChan := make(chan vectordb.Record, concurrency*2)

	wg := sync.WaitGroup{}
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range docChan {
				if recordMatchesFilters(&doc, opts) {
					filteredDocsLock.Lock()
					filteredDocs = append(filteredDocs, doc)
					filteredDocsLock.Unlock()
				}
			}
		}()
	}

	for _, doc := range docs {
		docChan <- doc
	}
	close(docChan)

	wg.Wait()

	return filteredDocs
}

// recordMatchesFilters checks whether a record satisfies every metadata
// equality clause plus the include/exclude substring filters.
func recordMatchesFilters(record *vectordb.Record, opts *vectordb.SearchOptions) bool {
	for k, v := range opts.Meta {
		if record.Embedding.Meta[k] != v {
			return false
		}
	}
	if opts.Include != "" {
		if !strings.Contains(record.Embedding.Object, opts.Include) {
			return false
		}
	}
	if opts.Exclude != "" {
		if strings.Contains(record.Embedding.Object, opts.Exclude) {
			return false
		}
	}
	return true
}

// cosineSimilarity returns a score in [-1, 1] where larger means more similar.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
