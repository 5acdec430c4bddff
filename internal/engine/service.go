package engine

import (
	"log/slog"

	"resumatch/internal/errors"
	"resumatch/internal/types"
)

// Options configures a Service.
type Options struct {
	// Vocabulary terms merged on top of the built-in category lists.
	Vocabulary VocabularyLists
	// TopKeywords bounds the frequency-based text scorer; zero means
	// DefaultTopKeywords.
	TopKeywords int
}

// Service is the keyword analysis engine. It is stateless after
// construction and safe for concurrent use.
type Service struct {
	vocab       *vocabulary
	topKeywords int
	logger      *errors.Logger
}

// NewService compiles the vocabulary index and returns a ready engine.
func NewService(opts Options, logger *errors.Logger) *Service {
	if logger == nil {
		logger = errors.NewLogger(slog.LevelInfo)
	}
	top := opts.TopKeywords
	if top <= 0 {
		top = DefaultTopKeywords
	}
	s := &Service{
		vocab:       newVocabulary(opts.Vocabulary),
		topKeywords: top,
		logger:      logger,
	}
	logger.Debug("engine vocabulary compiled",
		slog.Int("terms", len(s.vocab.exact)),
		slog.Int("max_phrase_words", s.vocab.maxPhrase))
	return s
}

// AnalyzeMatch extracts keywords from the job description and scores the
// resume against them in one pass, the common CLI and API flow.
func (s *Service) AnalyzeMatch(resume types.ParsedResume, jobDescription string) (types.ExtractedKeywords, types.MatchResult) {
	kw := s.ExtractKeywords(jobDescription)
	return kw, s.MatchResume(resume, kw)
}
