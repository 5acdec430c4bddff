package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumatch/internal/observability"
	"resumatch/internal/store"
	"resumatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createExtractHandler wraps keyword extraction with observability
func (s *Server) createExtractHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.extract")
		defer span.End()

		var req ExtractRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "extract"),
		)

		metrics := om.GetMetrics()
		var result types.ExtractedKeywords
		inputBytes := int64(len(req.JobDescription))
		_ = metrics.TrackEngineOperation(ctx, "extract", inputBytes, func(ctx context.Context) error {
			result = s.Engine.ExtractKeywords(req.JobDescription)
			return nil
		}, om)

		keywordCount := len(result.TechnicalSkills) + len(result.Tools) +
			len(result.SoftSkills) + len(result.ActionVerbs)

		metrics.RecordBusinessMetric(ctx, "keywords_extracted", true, om,
			attribute.Int("keyword_count", keywordCount))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.keyword_count", keywordCount),
		)

		s.recordHistory(ctx, store.Entry{
			Operation:    store.OperationExtract,
			MatchedCount: keywordCount,
			Source:       "api",
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps resume matching with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if req.Keywords == nil && strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing keywords")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing keywords", "keywords or jobDescription field is required", http.StatusBadRequest)
			return
		}
		if req.Resume == nil && strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume", "resume or resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Bool("request.structured_resume", req.Resume != nil),
			attribute.Bool("request.supplied_keywords", req.Keywords != nil),
			attribute.String("operation", "match"),
		)

		metrics := om.GetMetrics()
		var result types.MatchResult
		inputBytes := int64(len(req.JobDescription) + len(req.ResumeText))
		_ = metrics.TrackEngineOperation(ctx, "match", inputBytes, func(ctx context.Context) error {
			keywords := req.Keywords
			if keywords == nil {
				kw := s.Engine.ExtractKeywords(req.JobDescription)
				keywords = &kw
			}
			if req.Resume != nil {
				result = s.Engine.MatchResume(*req.Resume, *keywords)
			} else {
				result = s.Engine.MatchResumeText(req.ResumeText, *keywords)
			}
			return nil
		}, om)

		metrics.RecordBusinessMetric(ctx, "resume_matched", true, om,
			attribute.Int("ats.score", result.Score))
		metrics.RecordMatchScore(ctx, result.Score, om,
			attribute.String("operation", "match"))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score),
			attribute.Int("matched_count", len(result.MatchedKeywords)),
			attribute.Int("missing_count", len(result.MissingKeywords)),
		)

		s.recordHistory(ctx, store.Entry{
			Operation:    store.OperationMatch,
			Score:        result.Score,
			MatchedCount: len(result.MatchedKeywords),
			MissingCount: len(result.MissingKeywords),
			Source:       "api",
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createDiffHandler wraps word diffing with observability
func (s *Server) createDiffHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.diff")
		defer span.End()

		var req DiffRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.original_length", len(req.Original)),
			attribute.Int("request.optimized_length", len(req.Optimized)),
			attribute.String("operation", "diff"),
		)

		metrics := om.GetMetrics()
		var result types.DiffResult
		inputBytes := int64(len(req.Original) + len(req.Optimized))
		_ = metrics.TrackEngineOperation(ctx, "diff", inputBytes, func(ctx context.Context) error {
			result = s.Engine.DiffWords(req.Original, req.Optimized)
			return nil
		}, om)

		metrics.RecordBusinessMetric(ctx, "diff_computed", true, om,
			attribute.Int("diff.added", result.Summary.Added),
			attribute.Int("diff.removed", result.Summary.Removed),
			attribute.Int("diff.unchanged", result.Summary.Unchanged))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("diff.added", result.Summary.Added),
			attribute.Int("diff.removed", result.Summary.Removed),
			attribute.Int("diff.unchanged", result.Summary.Unchanged),
		)

		// Diff entries reuse the counter columns for unchanged and removed tokens
		s.recordHistory(ctx, store.Entry{
			Operation:    store.OperationDiff,
			MatchedCount: result.Summary.Unchanged,
			MissingCount: result.Summary.Removed,
			Source:       "api",
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createScoreHandler wraps free-text scoring with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "score"),
		)

		metrics := om.GetMetrics()
		var result types.MatchResult
		inputBytes := int64(len(req.JobDescription) + len(req.ResumeText))
		_ = metrics.TrackEngineOperation(ctx, "score", inputBytes, func(ctx context.Context) error {
			result = s.Engine.ScoreText(req.JobDescription, req.ResumeText)
			return nil
		}, om)

		metrics.RecordBusinessMetric(ctx, "text_scored", true, om,
			attribute.Int("ats.score", result.Score))
		metrics.RecordMatchScore(ctx, result.Score, om,
			attribute.String("operation", "score"))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score),
		)

		s.recordHistory(ctx, store.Entry{
			Operation:    store.OperationScore,
			Score:        result.Score,
			MatchedCount: len(result.MatchedKeywords),
			MissingCount: len(result.MissingKeywords),
			Source:       "api",
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// recordHistory persists an analysis entry when history is enabled. Failures
// are logged and never fail the request.
func (s *Server) recordHistory(ctx context.Context, entry store.Entry) {
	if s.History == nil {
		return
	}

	if _, err := s.History.Record(ctx, entry); err != nil {
		s.Logger.LogError(err, "Failed to record analysis history",
			"operation", entry.Operation)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
