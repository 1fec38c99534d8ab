package service

import (
	"regexp"
	"strings"
)

// Paragraphs shorter than this many words are treated as noise (headers,
// page numbers, extraction artifacts) and dropped.
const minParagraphWords = 3

var (
	paragraphSplitter = regexp.MustCompile(`\n\s*\n`)
	sentenceSplitter  = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)
)

// ChunkService splits document text into retrieval-sized chunks bounded by a
// maximum word count, preferring paragraph and sentence boundaries over raw
// truncation. Consecutive chunks from the same paragraph overlap by whole
// sentences.
type ChunkService struct {
	maxWords         int // maximum words per chunk
	overlapSentences int // sentences carried over between consecutive chunks
}

type ChunkServiceConfig struct {
	MaxWords         int
	OverlapSentences int
}

var DefaultChunkServiceConfig = ChunkServiceConfig{
	MaxWords:         300,
	OverlapSentences: 2,
}

func NewChunkService(config ChunkServiceConfig) *ChunkService {
	if config.MaxWords <= 0 {
		config.MaxWords = DefaultChunkServiceConfig.MaxWords
	}
	if config.OverlapSentences < 0 {
		config.OverlapSentences = 0
	}
	return &ChunkService{
		maxWords:         config.MaxWords,
		overlapSentences: config.OverlapSentences,
	}
}

// SplitText splits text into ordered, non-empty chunks. Every chunk stays
// within the word bound except a single sentence that is itself longer than
// the bound, which is emitted whole rather than cut mid-sentence. Empty or
// whitespace-only input yields nil.
func (s *ChunkService) SplitText(text string) []string {
	var chunks []string
	for _, para := range paragraphSplitter.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" || wordCount(para) < minParagraphWords {
			continue
		}
		if wordCount(para) <= s.maxWords {
			chunks = append(chunks, para)
			continue
		}
		chunks = append(chunks, s.splitParagraph(para)...)
	}
	return chunks
}

// splitParagraph greedily packs sentences into chunks of at most maxWords
// words, seeding each new chunk with the tail sentences of the previous one.
func (s *ChunkService) splitParagraph(para string) []string {
	sentences := sentenceSplitter.FindAllString(para, -1)
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	var chunks []string
	var buf []string
	count := 0
	for _, sent := range sentences {
		if sent == "" {
			continue
		}
		n := wordCount(sent)
		if len(buf) == 0 && n > s.maxWords {
			// Oversized single sentence: emit as its own chunk.
			chunks = append(chunks, sent)
			continue
		}
		if count+n <= s.maxWords {
			buf = append(buf, sent)
			count += n
			continue
		}
		chunks = append(chunks, strings.Join(buf, " "))
		buf, count = s.seedOverlap(buf, n)
		buf = append(buf, sent)
		count += n
	}
	if len(buf) > 0 {
		chunks = append(chunks, strings.Join(buf, " "))
	}
	return chunks
}

// seedOverlap keeps the last overlapSentences sentences of the emitted chunk
// as the start of the next one, dropping leading seed sentences while the
// seed plus the pending sentence would break the word bound.
func (s *ChunkService) seedOverlap(buf []string, pendingWords int) ([]string, int) {
	start := len(buf) - s.overlapSentences
	if start < 0 {
		start = 0
	}
	seed := buf[start:]
	count := 0
	for _, sent := range seed {
		count += wordCount(sent)
	}
	for len(seed) > 0 && count+pendingWords > s.maxWords {
		count -= wordCount(seed[0])
		seed = seed[1:]
	}
	next := make([]string, len(seed))
	copy(next, seed)
	return next, count
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
