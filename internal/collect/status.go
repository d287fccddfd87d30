package collect

import (
	"sync"
	"time"
)

type Status struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastRecords int    `json:"last_records"`
	Running     bool   `json:"running"`
}

// Tracker holds the latest Status for the API and scheduler.
type Tracker struct {
	mu sync.Mutex
	st Status
}

func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) Load() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}

// Begin marks a run as started. It returns false when one is already running.
func (t *Tracker) Begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.st.Running {
		return false
	}
	t.st.Running = true
	t.st.LastRunAt = time.Now().Format(time.RFC3339)
	return true
}

func (t *Tracker) Finish(records int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.st.Running = false
	if err != nil {
		t.st.LastError = err.Error()
		return
	}
	t.st.LastError = ""
	t.st.LastOkAt = time.Now().Format(time.RFC3339)
	t.st.LastRecords = records
}
