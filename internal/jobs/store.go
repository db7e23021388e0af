package jobs

import (
	"strconv"
	"strings"
	"sync"

	"resumatch/internal/errors"
	"resumatch/internal/types"
)

// Store is the job catalog interface used by the matching pipeline and the
// HTTP API.
type Store interface {
	List() []types.JobPosting
	Get(id string) (types.JobPosting, bool)
	Add(job types.JobPosting) string
	Update(id string, job types.JobPosting) bool
	Delete(id string) bool
	Search(query string) []types.JobPosting
}

// MemoryStore is an insertion-ordered in-memory Store.
type MemoryStore struct {
	mu     sync.RWMutex
	jobs   []types.JobPosting
	logger *errors.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store seeded with the built-in demo catalog.
func NewMemoryStore(logger *errors.Logger) *MemoryStore {
	s := &MemoryStore{
		jobs:   seedJobs(),
		logger: logger,
	}
	logger.Info("Job store initialized", "jobs", len(s.jobs))
	return s
}

// NewMemoryStoreWith creates a store holding the given postings.
func NewMemoryStoreWith(jobs []types.JobPosting, logger *errors.Logger) *MemoryStore {
	s := &MemoryStore{
		jobs:   append([]types.JobPosting(nil), jobs...),
		logger: logger,
	}
	logger.Info("Job store initialized", "jobs", len(s.jobs))
	return s
}

// List returns all postings in insertion order.
func (s *MemoryStore) List() []types.JobPosting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.JobPosting(nil), s.jobs...)
}

// Get returns the posting with the given id.
func (s *MemoryStore) Get(id string) (types.JobPosting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, job := range s.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return types.JobPosting{}, false
}

// Add appends a posting, assigning the next numeric id, and returns the id.
func (s *MemoryStore) Add(job types.JobPosting) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, j := range s.jobs {
		if n, err := strconv.Atoi(j.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	job.ID = strconv.Itoa(maxID + 1)
	s.jobs = append(s.jobs, job)

	s.logger.Info("Added new job", "job_id", job.ID, "title", job.Title, "company", job.Company)
	return job.ID
}

// Update replaces the posting with the given id, keeping the id itself.
func (s *MemoryStore) Update(id string, job types.JobPosting) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			job.ID = id
			s.jobs[i] = job
			s.logger.Info("Updated job", "job_id", id)
			return true
		}
	}
	return false
}

// Delete removes the posting with the given id.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.logger.Info("Deleted job", "job_id", id, "title", s.jobs[i].Title)
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Search returns postings whose title, company, description or requirements
// contain the query, case-insensitively.
func (s *MemoryStore) Search(query string) []types.JobPosting {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []types.JobPosting
	for _, job := range s.jobs {
		if strings.Contains(strings.ToLower(job.Title), q) ||
			strings.Contains(strings.ToLower(job.Company), q) ||
			strings.Contains(strings.ToLower(job.Description), q) ||
			strings.Contains(strings.ToLower(job.Requirements), q) {
			results = append(results, job)
		}
	}
	return results
}

// replaceAll swaps the whole catalog, used by the file watcher on reload.
func (s *MemoryStore) replaceAll(jobs []types.JobPosting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append([]types.JobPosting(nil), jobs...)
}
