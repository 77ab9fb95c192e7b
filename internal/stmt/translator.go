package stmt

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
	"github.com/roach88/bct/internal/translate"
)

var log = commonlog.GetLogger("bct.stmt")

// Factory creates Translators that resolve method, type and field names
// against one assembly.
type Factory struct {
	idx *meta.Index
}

// NewFactory returns a factory resolving names through idx.
func NewFactory(idx *meta.Index) *Factory {
	return &Factory{idx: idx}
}

// NewStatementTranslator implements translate.StatementTranslatorFactory.
func (f *Factory) NewStatementTranslator(_ *translate.Sink, debug translate.DebugInfo) translate.StatementTranslator {
	return &Translator{idx: f.idx, debug: debug}
}

// Translator lowers the body of one method.
type Translator struct {
	idx   *meta.Index
	debug translate.DebugInfo
}

// TranslateBody implements translate.StatementTranslator. A method without a
// body yields no blocks. Otherwise the first block is labeled "entry" and,
// when the method's location is known, starts with a sourceloc assume.
func (t *Translator) TranslateBody(m *meta.MethodDefinition, sink *translate.Sink) ([]*bpl.Block, error) {
	if m.Body == nil {
		return nil, nil
	}
	body, err := Parse(m.String(), m.Body.Source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	l := newLowerer(t.idx, sink, m)
	if t.debug != nil {
		if loc, ok := t.debug.Location(m); ok {
			l.current().Add(sourceLocation(loc))
		}
	}
	if err := l.stmts(body.Stmts); err != nil {
		return nil, err
	}
	blocks := l.finish()
	log.Debugf("lowered %s: %d statement(s), %d block(s)", m, len(body.Stmts), len(blocks))
	return blocks, nil
}

func sourceLocation(loc meta.Location) *bpl.AssumeCmd {
	return &bpl.AssumeCmd{
		Expr: bpl.True,
		Attributes: []*bpl.Attribute{
			{Key: "sourceloc", Params: []bpl.Expr{bpl.StringLit(loc.File), bpl.IntLit(loc.Line)}},
		},
	}
}
