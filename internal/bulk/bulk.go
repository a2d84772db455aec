// Package bulk collects the per-id outcome of a batch of independent
// link or unlink attempts.
package bulk

// Error records why one id in a batch failed.
type Error struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Response is the outcome of a bulk operation. Each requested id appears in
// exactly one of Success or Errors, in the order it was processed.
type Response struct {
	Success []string `json:"success"`
	Errors  []Error  `json:"errors"`
}

// New returns an empty response whose lists encode as [] rather than null.
func New() *Response {
	return &Response{
		Success: []string{},
		Errors:  []Error{},
	}
}

func (r *Response) AddSuccess(id string) {
	r.Success = append(r.Success, id)
}

func (r *Response) AddError(id, reason string) {
	r.Errors = append(r.Errors, Error{ID: id, Status: reason})
}

// Len is the number of ids recorded so far.
func (r *Response) Len() int {
	return len(r.Success) + len(r.Errors)
}
