package handlers

import (
	"net/http"

	"github.com/wonny/swingtrader/internal/scheduler"
)

// JobStatsSource reports scheduler statistics
type JobStatsSource interface {
	GetJobStats() map[string]scheduler.JobStats
}

// JobsHandler exposes scheduled job status
type JobsHandler struct {
	source JobStatsSource
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(source JobStatsSource) *JobsHandler {
	return &JobsHandler{source: source}
}

// GetJobs returns per-job run statistics
// GET /api/jobs
func (h *JobsHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		respondJSON(w, http.StatusOK, map[string]scheduler.JobStats{})
		return
	}
	respondJSON(w, http.StatusOK, h.source.GetJobStats())
}
