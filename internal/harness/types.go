package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when the outcome matches expect and every assertion holds.
	Pass bool `json:"pass"`

	// Status is "ok" or "error", the actual outcome of the translation.
	Status string `json:"status"`

	// Code is the error code of a failed translation.
	Code string `json:"code,omitempty"`

	// Message describes a failed translation.
	Message string `json:"message,omitempty"`

	// Program is the printed program of a successful translation.
	Program string `json:"program,omitempty"`

	// Hash is the content hash of the program.
	Hash string `json:"hash,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
