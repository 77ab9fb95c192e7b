package translate

import (
	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
)

// StatementTranslator translates one method body into blocks. It is invoked
// exactly once per method, after the Sink's per-method slots are bound.
// Locals it needs are declared through sink.NewLocal or sink.NewTemp.
type StatementTranslator interface {
	TranslateBody(method *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error)
}

// StatementTranslatorFactory creates the StatementTranslator for a method.
type StatementTranslatorFactory interface {
	NewStatementTranslator(sink *Sink, debug DebugInfo) StatementTranslator
}

// StatementTranslatorFunc adapts a function to StatementTranslator.
type StatementTranslatorFunc func(method *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error)

// TranslateBody implements StatementTranslator.
func (f StatementTranslatorFunc) TranslateBody(method *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error) {
	return f(method, sink)
}

// DebugInfo supplies source locations. It is optional; a nil DebugInfo
// means no locations are known.
type DebugInfo interface {
	Location(method *meta.MethodDefinition) (meta.Location, bool)
}

// MethodLocations is the DebugInfo backed by the locations recorded on the
// methods themselves.
type MethodLocations struct{}

// Location implements DebugInfo.
func (MethodLocations) Location(method *meta.MethodDefinition) (meta.Location, bool) {
	if method.Location.IsValid() {
		return method.Location, true
	}
	if method.Body != nil && method.Body.Location.IsValid() {
		return method.Body.Location, true
	}
	return meta.Location{}, false
}
