package server

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"net/http"
	"strings"

	resumatchErrors "resumatch/internal/errors"
	"resumatch/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the analyze handler with observability. The
// endpoint accepts a multipart upload with a "resume" file part and an
// optional "jobIds" field holding comma-separated posting ids.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumatch.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart request", err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("resume")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume file", "multipart field 'resume' is required", http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()

		if header.Size > s.MaxRequestSize {
			err := fmt.Errorf("resume too large: %d bytes", header.Size)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume file too large",
				fmt.Sprintf("resume exceeds size limit of %d bytes", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		jobIDs := parseJobIDs(r.FormValue("jobIds"))

		span.SetAttributes(
			attribute.String("request.filename", header.Filename),
			attribute.Int64("request.file_size", header.Size),
			attribute.Int("request.job_id_count", len(jobIDs)),
			attribute.String("operation", "analyze"),
		)

		result, err := s.Analysis.AnalyzeReader(ctx, file, header.Filename, jobIDs)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			writeAppErrorResponse(w, "Failed to analyze resume", err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.match_count", len(result.Matches)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps the match handler with observability. It takes
// already-extracted resume text as JSON and skips the upload path.
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

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		if len(req.ResumeText) > int(s.MaxRequestSize) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large",
				fmt.Sprintf("resumeText exceeds size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_id_count", len(req.JobIDs)),
			attribute.String("operation", "match"),
		)

		result, err := s.Analysis.AnalyzeText(ctx, req.ResumeText, req.JobIDs)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "matching"))
			writeAppErrorResponse(w, "Failed to match resume", err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.match_count", len(result.Matches)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseJobIDs splits a comma-separated id list, dropping empty entries.
func parseJobIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// writeAppErrorResponse maps application error codes to HTTP status codes.
func writeAppErrorResponse(w http.ResponseWriter, title string, err error) {
	status := http.StatusInternalServerError

	var appErr *resumatchErrors.AppError
	if goerrors.As(err, &appErr) {
		switch appErr.Code {
		case resumatchErrors.ErrCodeUnsupportedFileType,
			resumatchErrors.ErrCodeEmptyDocument,
			resumatchErrors.ErrCodeInvalidFormat,
			resumatchErrors.ErrCodeInvalidRequest:
			status = http.StatusBadRequest
		case resumatchErrors.ErrCodeJobNotFound:
			status = http.StatusNotFound
		case resumatchErrors.ErrCodeEmbeddingTimeout,
			resumatchErrors.ErrCodeNetworkTimeout:
			status = http.StatusGatewayTimeout
		}
	}

	writeErrorResponse(w, title, err.Error(), status)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
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
