package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a structuring job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusStructuring JobStatus = "structuring"
	StatusSerializing JobStatus = "serializing"
	StatusIngesting   JobStatus = "ingesting"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
)

// Job tracks the state of structuring a single source document.
type Job struct {
	mu sync.Mutex

	ID          string `json:"job_id"`
	ProductName string `json:"product_name"`
	ProductLine string `json:"product_line"`
	Filename    string `json:"filename"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`
	Ingest bool      `json:"ingest"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
}

// Progress tracks structuring results.
type Progress struct {
	Sections   int      `json:"sections"`
	Present    int      `json:"present"`
	Missing    int      `json:"missing"`
	Tables     int      `json:"tables"`
	OutputPath string   `json:"output_path,omitempty"`
	Errors     []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Errors = append(j.Progress.Errors, err)
	j.UpdatedAt = time.Now()
}

// SetResult records the structuring outcome.
func (j *Job) SetResult(sections, present, missing, tableCount int, outputPath string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Sections = sections
	j.Progress.Present = present
	j.Progress.Missing = missing
	j.Progress.Tables = tableCount
	j.Progress.OutputPath = outputPath
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	ProductName string    `json:"product_name"`
	ProductLine string    `json:"product_line"`
	Filename    string    `json:"filename"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		ProductName: j.ProductName,
		ProductLine: j.ProductLine,
		Filename:    j.Filename,
		Status:      j.Status,
		Phase:       j.Phase,
		Progress: Progress{
			Sections:   j.Progress.Sections,
			Present:    j.Progress.Present,
			Missing:    j.Progress.Missing,
			Tables:     j.Progress.Tables,
			OutputPath: j.Progress.OutputPath,
			Errors:     errs,
		},
	}
}
