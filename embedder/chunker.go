package embedder

import "strings"

// Chunk is a slice of a larger document together with its token size and the
// sentence range it covers in the source text.
type Chunk struct {
	// Text contains the actual content of the chunk
	Text string
	// TokenSize represents the number of tokens in this chunk
	TokenSize int
	// StartSentence is the index of the first sentence in this chunk
	StartSentence int
	// EndSentence is the index of the last sentence in this chunk (exclusive)
	EndSentence int
}

// Chunker splits long documents into overlapping pieces small enough to embed.
type Chunker interface {
	Chunk(text string) []Chunk
}

// DefaultSentenceSplitter splits text into sentences on ., ! and ?.
func DefaultSentenceSplitter(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// TextChunker implements Chunker with configurable chunk size, overlap,
// tokenization and sentence splitting.
type TextChunker struct {
	// ChunkSize is the target size of each chunk in tokens
	ChunkSize int
	// ChunkOverlap is the number of tokens that should overlap between adjacent chunks
	ChunkOverlap int
	// TokenCounter is used to count tokens in text segments
	TokenCounter TokenCounter
	// SentenceSplitter is a function that splits text into sentences
	SentenceSplitter func(string) []string
}

// TextChunkerOption configures a TextChunker.
type TextChunkerOption func(*TextChunker)

func WithChunkSize(size int) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.ChunkSize = size
	}
}

func WithChunkOverlap(overlap int) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.ChunkOverlap = overlap
	}
}

func WithTokenCounter(counter TokenCounter) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.TokenCounter = counter
	}
}

func WithSentenceSplitter(splitter func(string) []string) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.SentenceSplitter = splitter
	}
}

// NewTextChunker creates a TextChunker. Defaults: 200 token chunks with a 50
// token overlap, whitespace tokenization and DefaultSentenceSplitter.
func NewTextChunker(options ...TextChunkerOption) *TextChunker {
	tc := &TextChunker{
		ChunkSize:        200,
		ChunkOverlap:     50,
		TokenCounter:     &DefaultTokenCounter{},
		SentenceSplitter: DefaultSentenceSplitter,
	}
	for _, option := range options {
		option(tc)
	}
	return tc
}

// Chunk splits the input text into chunks while preserving sentence boundaries
// and maintaining the configured overlap between adjacent chunks.
func (tc *TextChunker) Chunk(text string) []Chunk {
	sentences := tc.SentenceSplitter(text)
	var chunks []Chunk
	var currentChunk Chunk
	currentTokenCount := 0

	for i, sentence := range sentences {
		sentenceTokenCount := tc.TokenCounter.Count(sentence)

		if currentTokenCount+sentenceTokenCount > tc.ChunkSize && currentTokenCount > 0 {
			chunks = append(chunks, currentChunk)

			overlapStart := max(currentChunk.StartSentence, currentChunk.EndSentence-tc.estimateOverlapSentences(sentences, currentChunk.EndSentence, tc.ChunkOverlap))
			currentChunk = Chunk{
				Text:          strings.Join(sentences[overlapStart:i+1], " "),
				StartSentence: overlapStart,
				EndSentence:   i + 1,
			}
			currentTokenCount = 0
			for j := overlapStart; j <= i; j++ {
				currentTokenCount += tc.TokenCounter.Count(sentences[j])
			}
		} else {
			if currentTokenCount == 0 {
				currentChunk.StartSentence = i
			}
			currentChunk.Text += sentence + " "
			currentChunk.EndSentence = i + 1
			currentTokenCount += sentenceTokenCount
		}
		currentChunk.TokenSize = currentTokenCount
	}

	if currentChunk.TokenSize > 0 {
		chunks = append(chunks, currentChunk)
	}

	return chunks
}

func (tc *TextChunker) estimateOverlapSentences(sentences []string, endSentence, desiredOverlap int) int {
	overlapTokens := 0
	overlapSentences := 0
	for i := endSentence - 1; i >= 0 && overlapTokens < desiredOverlap; i-- {
		overlapTokens += tc.TokenCounter.Count(sentences[i])
		overlapSentences++
	}
	return overlapSentences
}
