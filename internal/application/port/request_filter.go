package port

// Decision is the outcome of a request filter check.
type Decision struct {
	Block  bool
	Reason string
}

// RequestFilter decides whether a network request may proceed.
type RequestFilter interface {
	Decide(url, resourceType string) Decision
}
