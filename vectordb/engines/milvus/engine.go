package milvus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"cenone/vectordb"
)

// Engine implements vectordb.Engine against a milvus server. Collections are
// created lazily on first insert with an HNSW index over the embedding field.
type Engine struct {
	db milvusClient.Client
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db milvusClient.Client, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Milvus)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) CreateCollection(ctx context.Context, name string, dim int64) error {
	idField := entity.NewField().WithName("id").WithDataType(entity.FieldTypeVarChar).WithMaxLength(36).WithIsPrimaryKey(true).WithIsAutoID(false)
	vectorField := entity.NewField().WithName("embedding").WithDataType(entity.FieldTypeFloatVector).WithDim(dim)
	contentField := entity.NewField().WithName("content").WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)
	metaField := entity.NewField().WithName("meta").WithDataType(entity.FieldTypeJSON)
	schema := entity.NewSchema().WithName(name).WithAutoID(false).WithField(idField).WithField(vectorField).WithField(contentField).WithField(metaField)
	if err := e.db.CreateCollection(ctx, schema, 0); err != nil {
		return err
	}
	idxHnsw, err := entity.NewIndexHNSW(entity.COSINE, 8, 200)
	if err != nil {
		return err
	}
	return e.db.CreateIndex(ctx, name, "embedding", idxHnsw, true, milvusClient.WithIndexName("embedding_idx"))
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	if len(records) == 0 {
		return nil
	}
	dim := int64(e.Dimension)
	if dim == 0 {
		dim = int64(len(records[0].Embedding.Embedding))
	}
	if exists, err := e.db.HasCollection(ctx, collectionName); err != nil {
		return err
	} else if !exists {
		if err := e.CreateCollection(ctx, collectionName, dim); err != nil {
			return err
		}
	}
	count := len(records)
	ids := make([]string, 0, count)
	vectors := make([][]float32, 0, count)
	contents := make([]string, 0, count)
	metas := make([][]byte, 0, count)
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		ids = append(ids, record.ID)
		vectors = append(vectors, vectordb.Float32s(record.Embedding.Embedding))
		contents = append(contents, record.Embedding.Object)
		meta := record.Embedding.Meta
		if meta == nil {
			meta = map[string]string{}
		}
		bs, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		metas = append(metas, bs)
	}
	columns := []entity.Column{
		entity.NewColumnVarChar("id", ids),
		entity.NewColumnFloatVector("embedding", int(dim), vectors),
		entity.NewColumnVarChar("content", contents),
		entity.NewColumnJSONBytes("meta", metas),
	}
	if _, err := e.db.Insert(ctx, collectionName, "", columns...); err != nil {
		return err
	}
	return e.db.Flush(ctx, collectionName, false)
}

// Search performs vector similarity search on a collection. Metadata clauses
// are pushed down as a milvus filter expression over the JSON meta field.
func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	if err := e.db.LoadCollection(ctx, option.Collection, false); err != nil {
		return nil, err
	}
	query := entity.FloatVector(vectordb.Float32s(vectors))
	topK := option.TopK
	if topK == 0 {
		topK = e.TopK
	}
	searchParams, err := entity.NewIndexHNSWSearchParam(max(topK, 16))
	if err != nil {
		return nil, err
	}
	expr := metaExpr(option.Meta)
	results, err := e.db.Search(ctx, option.Collection, nil, expr, []string{"id", "content", "meta"}, []entity.Vector{query}, "embedding", entity.COSINE, topK, searchParams)
	if err != nil {
		return nil, err
	}
	var searchResults []vectordb.Record
	for _, result := range results {
		records, err := searchResultToRecords(&result)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if e.MinScore > 0 && rec.Score < e.MinScore {
				continue
			}
			searchResults = append(searchResults, rec)
		}
	}
	return searchResults, nil
}

func (e *Engine) Get(ctx context.Context, collectionName string, id string) (*vectordb.Record, error) {
	if err := e.db.LoadCollection(ctx, collectionName, false); err != nil {
		return nil, err
	}
	rs, err := e.db.Query(ctx, collectionName, nil, fmt.Sprintf("id == %q", id), []string{"id", "content", "meta"})
	if err != nil {
		return nil, err
	}
	records, err := columnsToRecords(rs, nil)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (e *Engine) Count(ctx context.Context, collectionName string) (int, error) {
	if exists, err := e.db.HasCollection(ctx, collectionName); err != nil {
		return 0, err
	} else if !exists {
		return 0, nil
	}
	stats, err := e.db.GetCollectionStatistics(ctx, collectionName)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(stats["row_count"])
}

func (e *Engine) Drop(ctx context.Context, collectionName string) error {
	if exists, err := e.db.HasCollection(ctx, collectionName); err != nil {
		return err
	} else if !exists {
		return nil
	}
	return e.db.DropCollection(ctx, collectionName)
}

// metaExpr builds a milvus boolean expression from metadata equality clauses,
// e.g. meta["category"] == "dessert" and meta["is_vegan"] == "true".
func metaExpr(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(meta))
	for k, v := range meta {
		clauses = append(clauses, fmt.Sprintf("meta[%q] == %q", k, v))
	}
	return strings.Join(clauses, " and ")
}

func searchResultToRecords(result *milvusClient.SearchResult) ([]vectordb.Record, error) {
	return columnsToRecords(result.Fields, result.Scores)
}

func columnsToRecords(columns []entity.Column, scores []float32) ([]vectordb.Record, error) {
	byName := make(map[string]entity.Column, len(columns))
	rows := 0
	for _, col := range columns {
		byName[col.Name()] = col
		rows = col.Len()
	}
	records := make([]vectordb.Record, 0, rows)
	for i := 0; i < rows; i++ {
		var record vectordb.Record
		if col, ok := byName["id"]; ok {
			record.ID, _ = col.GetAsString(i)
		}
		if col, ok := byName["content"]; ok {
			record.Embedding.Object, _ = col.GetAsString(i)
		}
		if col, ok := byName["meta"]; ok {
			if v, err := col.Get(i); err == nil {
				if bs, ok := v.([]byte); ok {
					if err := json.Unmarshal(bs, &record.Embedding.Meta); err != nil {
						return nil, err
					}
				}
			}
		}
		if i < len(scores) {
			record.Score = float64(scores[i])
		}
		records = append(records, record)
	}
	return records, nil
}
