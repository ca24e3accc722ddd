package search

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// StatusRateLimited is the status a search backend answers with once a
// credential's quota is exhausted.
const StatusRateLimited = http.StatusTooManyRequests

// Credential is one search account. LastStatus is 0 until the credential has
// been used and then holds the status of its most recent attempt.
type Credential struct {
	Name         string
	APIKey       string
	CollectionID string
	LastStatus   int
}

// ConfigurationError reports an unusable credential list. It is raised before
// any search is attempted.
type ConfigurationError struct {
	Index  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Index < 0 {
		return "search credentials: " + e.Reason
	}
	return fmt.Sprintf("search credentials[%d]: %s", e.Index, e.Reason)
}

// Pool is the ordered set of credentials used for one run. A credential seen
// answering 429 stays excluded for the rest of the run.
type Pool struct {
	mu          sync.RWMutex
	credentials []Credential
}

// NewPool validates and copies the credentials. Unnamed entries are called
// custom-search-{index}.
func NewPool(credentials []Credential) (*Pool, error) {
	if len(credentials) == 0 {
		return nil, &ConfigurationError{Index: -1, Reason: "at least one credential is required"}
	}
	pool := &Pool{credentials: make([]Credential, len(credentials))}
	for i, cred := range credentials {
		var missing []string
		if strings.TrimSpace(cred.APIKey) == "" {
			missing = append(missing, "api_key")
		}
		if strings.TrimSpace(cred.CollectionID) == "" {
			missing = append(missing, "cse_id")
		}
		if len(missing) > 0 {
			return nil, &ConfigurationError{Index: i, Reason: "missing " + strings.Join(missing, ", ")}
		}
		if strings.TrimSpace(cred.Name) == "" {
			cred.Name = fmt.Sprintf("custom-search-%d", i)
		}
		pool.credentials[i] = cred
	}
	return pool, nil
}

// Len returns the number of credentials, excluded ones included.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.credentials)
}

// Credential returns a copy of the credential at index.
func (p *Pool) Credential(index int) Credential {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.credentials[index]
}

// ActiveIndices lists, in pool order, the credentials not yet rate limited.
func (p *Pool) ActiveIndices() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	active := make([]int, 0, len(p.credentials))
	for i, cred := range p.credentials {
		if cred.LastStatus != StatusRateLimited {
			active = append(active, i)
		}
	}
	return active
}

// RecordStatus stores the status of the latest attempt made with index.
func (p *Pool) RecordStatus(index, status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.credentials[index].LastStatus = status
}

// Snapshot returns a copy of every credential for reporting.
func (p *Pool) Snapshot() []Credential {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Credential(nil), p.credentials...)
}
