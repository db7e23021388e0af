package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumatch/internal/observability"
	"resumatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createListJobsHandler serves the job catalog, optionally filtered by the
// "q" query parameter.
func (s *Server) createListJobsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumatch.api")
		_, span := tracer.Start(r.Context(), "api.jobs.list")
		defer span.End()

		var postings []types.JobPosting
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query != "" {
			postings = s.Store.Search(query)
			span.SetAttributes(attribute.String("jobs.query", query))
		} else {
			postings = s.Store.List()
		}

		span.SetAttributes(attribute.Int("jobs.count", len(postings)))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.JobList{Jobs: postings}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createGetJobHandler serves a single posting by id.
func (s *Server) createGetJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumatch.api")
		_, span := tracer.Start(r.Context(), "api.jobs.get")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("job.id", id))

		job, ok := s.Store.Get(id)
		if !ok {
			writeErrorResponse(w, "Job not found",
				fmt.Sprintf("no job posting with id %q", id), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(job); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createAddJobHandler adds a posting to the catalog. The id is assigned by
// the store and returned in the response.
func (s *Server) createAddJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumatch.api")
		_, span := tracer.Start(r.Context(), "api.jobs.add")
		defer span.End()

		var job types.JobPosting
		if err := parseJSONRequest(r, &job); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := validateJobPosting(job); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid job posting", err.Error(), http.StatusBadRequest)
			return
		}

		job.ID = s.Store.Add(job)
		span.SetAttributes(
			attribute.String("job.id", job.ID),
			attribute.String("job.title", job.Title),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(job); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createUpdateJobHandler replaces the posting with the given id.
func (s *Server) createUpdateJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumatch.api")
		_, span := tracer.Start(r.Context(), "api.jobs.update")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("job.id", id))

		var job types.JobPosting
		if err := parseJSONRequest(r, &job); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := validateJobPosting(job); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid job posting", err.Error(), http.StatusBadRequest)
			return
		}

		if !s.Store.Update(id, job) {
			writeErrorResponse(w, "Job not found",
				fmt.Sprintf("no job posting with id %q", id), http.StatusNotFound)
			return
		}

		job.ID = id
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(job); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createDeleteJobHandler removes the posting with the given id.
func (s *Server) createDeleteJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumatch.api")
		_, span := tracer.Start(r.Context(), "api.jobs.delete")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("job.id", id))

		if !s.Store.Delete(id) {
			writeErrorResponse(w, "Job not found",
				fmt.Sprintf("no job posting with id %q", id), http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// validateJobPosting checks the fields a posting must carry to be matchable.
func validateJobPosting(job types.JobPosting) error {
	if strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("title field is required")
	}
	if strings.TrimSpace(job.Description) == "" {
		return fmt.Errorf("description field is required")
	}
	return nil
}
