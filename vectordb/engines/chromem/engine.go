package chromem

import (
	"context"

	chromem "github.com/philippgille/chromem-go"

	"cenone/vectordb"
)

// Engine implements vectordb.Engine on top of chromem-go, an embedded vector
// store that can optionally persist to disk. It is the default engine when no
// external database server is available.
type Engine struct {
	db *chromem.DB
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db *chromem.DB, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Chromem)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) Collection(_ context.Context, name string) (*chromem.Collection, error) {
	return e.db.GetOrCreateCollection(name, nil, nil)
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return err
	}
	docs := make([]chromem.Document, 0, len(records))
	for _, record := range records {
		var doc chromem.Document
		recordToDocument(&record, &doc)
		docs = append(docs, doc)
	}
	// insert in batches to keep memory in check
	batchSize := 100
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		if err := col.AddDocuments(ctx, docs[i:end], 1); err != nil {
			return err
		}
	}
	return nil
}

// Search performs vector similarity search on a collection.
func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	col, err := e.Collection(ctx, option.Collection)
	if err != nil {
		return nil, err
	}
	query := vectordb.Float32s(vectors)
	whereDocument := make(map[string]string, 2)
	if option.Include != "" {
		whereDocument["$contains"] = option.Include
	}
	if option.Exclude != "" {
		whereDocument["$not_contains"] = option.Exclude
	}
	topK := option.TopK
	if topK == 0 {
		topK = e.TopK
	}
	// chromem rejects queries asking for more results than stored documents
	if count := col.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}
	results, err := col.QueryEmbedding(ctx, query, topK, option.Meta, whereDocument)
	if err != nil {
		return nil, err
	}
	searchResults := make([]vectordb.Record, 0, len(results))
	for _, result := range results {
		var rec vectordb.Record
		resultToRecord(&result, &rec)
		if e.MinScore > 0 && rec.Score < e.MinScore {
			continue
		}
		searchResults = append(searchResults, rec)
	}
	return searchResults, nil
}

func (e *Engine) Get(ctx context.Context, collectionName string, id string) (*vectordb.Record, error) {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	doc, err := col.GetByID(ctx, id)
	if err != nil {
		// chromem reports missing documents as an error
		return nil, nil
	}
	rec := &vectordb.Record{ID: doc.ID}
	rec.Embedding.Object = doc.Content
	rec.Embedding.Meta = doc.Metadata
	rec.Embedding.Embedding = vectordb.Float64s(doc.Embedding)
	return rec, nil
}

func (e *Engine) Count(ctx context.Context, collectionName string) (int, error) {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return 0, err
	}
	return col.Count(), nil
}

func (e *Engine) Drop(_ context.Context, collectionName string) error {
	return e.db.DeleteCollection(collectionName)
}

func resultToRecord(res *chromem.Result, record *vectordb.Record) {
	record.ID = res.ID
	record.Score = float64(res.Similarity)
	record.Embedding.Object = res.Content
	record.Embedding.Meta = res.Metadata
	record.Embedding.Embedding = vectordb.Float64s(res.Embedding)
}

func recordToDocument(record *vectordb.Record, doc *chromem.Document) {
	if record.ID == "" {
		record.ID = record.Embedding.UUID()
	}
	doc.ID = record.ID
	doc.Content = record.Embedding.Object
	doc.Metadata = record.Embedding.Meta
	doc.Embedding = vectordb.Float32s(record.Embedding.Embedding)
}
