package store

// Run statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Run is one translation attempt.
type Run struct {
	ID                string
	Seq               int64
	Input             string // path of the assembly description
	InputHash         string
	Status            string // StatusOK or StatusError
	ErrorCode         string // translation or load error code when Status is StatusError
	Message           string
	ProgramHash       string
	Procedures        int
	Implementations   int
	Cached            bool // output served from the outputs table
	TranslatorVersion string
	IRVersion         string
}

// Output is a cached translation result keyed by input hash.
type Output struct {
	InputHash       string
	Seq             int64
	ProgramHash     string
	Procedures      int
	Implementations int
	Program         string // printed program text
}
