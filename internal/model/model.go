package model

import "time"

// Hop represents a single step in a traced redirect chain.
type Hop struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Status int    `json:"status"`
	Via    string `json:"via"`
	TimeMs int64  `json:"time_ms"`
	Size   int64  `json:"size"`
	Final  bool   `json:"final"`
}

// Result is the outcome of probing one candidate redirector.
// Alive is set when the last hop's body matched the liveness marker.
type Result struct {
	Position   int       `json:"position"`
	Target     string    `json:"target"`
	Payload    string    `json:"payload,omitempty"`
	Chain      []Hop     `json:"chain"`
	Alive      bool      `json:"alive"`
	Blocked    string    `json:"blocked,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

// Last returns the final hop of the chain, or a zero Hop for an empty chain.
func (r Result) Last() Hop {
	if len(r.Chain) == 0 {
		return Hop{}
	}
	return r.Chain[len(r.Chain)-1]
}

// FinalURL is the URL the chain ended on, falling back to the target.
func (r Result) FinalURL() string {
	if len(r.Chain) == 0 {
		return r.Target
	}
	return r.Last().URL
}
