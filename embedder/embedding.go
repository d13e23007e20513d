package embedder

import (
	"bytes"
	"errors"

	"github.com/google/uuid"
)

// Embedding is a dense vector representation of a piece of text along with
// the text itself and optional metadata used for filtered retrieval.
type Embedding struct {
	Object    string            `json:"object"`
	Embedding []float64         `json:"embedding"`
	Index     int               `json:"index"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// UUID derives a stable identifier from the embedded text and metadata.
func (e Embedding) UUID() string {
	sb := new(bytes.Buffer)
	sb.WriteString(e.Object)
	for k, v := range e.Meta {
		sb.WriteString(k + ":" + v)
		sb.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, sb.Bytes()).String()
}

// DotProduct calculates the dot product of the embedding vector with another
// embedding vector. Both vectors must have the same length.
func (e *Embedding) DotProduct(other *Embedding) (float64, error) {
	if len(e.Embedding) != len(other.Embedding) {
		return 0, errors.New("vector length mismatch")
	}
	var dotProduct float64
	for i := range e.Embedding {
		dotProduct += e.Embedding[i] * other.Embedding[i]
	}
	return dotProduct, nil
}
