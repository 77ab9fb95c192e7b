package translate

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
)

var log = commonlog.GetLogger("bct.translate")

// TypeClass is the closed classification of a type definition: exactly one
// of ClassType, DelegateType or UnsupportedType.
type TypeClass interface {
	typeClass()
}

// ClassType is a type whose members are translated.
type ClassType struct {
	Def *meta.TypeDefinition
}

// DelegateType is a type recorded for dispatch synthesis.
type DelegateType struct {
	Def *meta.TypeDefinition
}

// UnsupportedType is any other type definition.
type UnsupportedType struct {
	Name string
	Kind meta.TypeKind
}

func (ClassType) typeClass()       {}
func (DelegateType) typeClass()    {}
func (UnsupportedType) typeClass() {}

// Classify sorts t into its TypeClass.
func Classify(t *meta.TypeDefinition) TypeClass {
	switch t.Kind {
	case meta.KindClass:
		return ClassType{Def: t}
	case meta.KindDelegate:
		return DelegateType{Def: t}
	default:
		return UnsupportedType{Name: t.FullName(), Kind: t.Kind}
	}
}

// Stats counts what a run produced.
type Stats struct {
	Types     int
	Fields    int
	Methods   int
	Delegates int
}

// Result is the output of a successful run.
type Result struct {
	Program *bpl.Program
	Stats   Stats
}

// Translator drives translation of assemblies. Each Run starts from a fresh
// Sink, so one Translator can serve several runs in sequence.
type Translator struct {
	factory StatementTranslatorFactory
	debug   DebugInfo
}

// Option configures a Translator.
type Option func(*Translator)

// WithDebugInfo makes source locations available to statement translators.
func WithDebugInfo(d DebugInfo) Option {
	return func(tr *Translator) {
		tr.debug = d
	}
}

// NewTranslator returns a Translator using factory for method bodies. A nil
// factory translates every body as empty.
func NewTranslator(factory StatementTranslatorFactory, opts ...Option) *Translator {
	tr := &Translator{factory: factory}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// Run translates asm. Dispatch procedures are synthesized after every module
// has been visited, in the order delegate types were first recorded. On
// error the partial program is dropped and the Result is nil.
func (tr *Translator) Run(asm *meta.Assembly) (*Result, error) {
	sink := NewSink()
	var stats Stats

	log.Infof("translating assembly %s", asm.Name)
	for _, mod := range asm.Modules {
		log.Debugf("visiting module %s", mod.Name)
		for _, t := range mod.Types {
			if err := tr.visitType(sink, t, &stats); err != nil {
				return nil, err
			}
		}
	}

	for _, entry := range sink.registry.Drain() {
		impl, err := tr.synthesizeDispatch(sink, entry)
		if err != nil {
			return nil, err
		}
		sink.Program.Add(impl)
		stats.Delegates++
	}

	log.Infof("translated %s: %d types, %d methods, %d fields, %d dispatch procedures",
		asm.Name, stats.Types, stats.Methods, stats.Fields, stats.Delegates)
	return &Result{Program: sink.Program, Stats: stats}, nil
}

func (tr *Translator) visitType(sink *Sink, t *meta.TypeDefinition, stats *Stats) error {
	switch c := Classify(t).(type) {
	case ClassType:
		stats.Types++
		log.Debugf("visiting class %s", c.Def.FullName())
		for _, f := range c.Def.Fields {
			sink.FindOrCreateFieldVariable(f)
			stats.Fields++
		}
		for _, m := range c.Def.Methods {
			if err := tr.visitMethod(sink, m); err != nil {
				return err
			}
			stats.Methods++
		}
		for _, nested := range c.Def.NestedTypes {
			if err := tr.visitType(sink, nested, stats); err != nil {
				return err
			}
		}
		return nil
	case DelegateType:
		log.Debugf("recording delegate %s", c.Def.FullName())
		return sink.AddDelegateType(c.Def)
	case UnsupportedType:
		return unsupported(ErrCodeUnsupportedType, c.Name,
			"%s types are not supported, only classes and delegates", c.Kind)
	default:
		panic(fmt.Sprintf("translate: unhandled type class %T", c))
	}
}

func (tr *Translator) visitMethod(sink *Sink, m *meta.MethodDefinition) error {
	sink.BeginMethod()
	info := sink.FindOrCreateProcedure(m)
	name := info.Proc.Name

	if m.IsAbstract {
		return unsupported(ErrCodeAbstractMethod, name, "abstract methods are not supported")
	}
	sink.bindMethod(info)

	blocks, err := tr.translateBody(sink, m)
	if err != nil {
		return fmt.Errorf("translate body of %s: %w", name, err)
	}
	if len(blocks) == 0 {
		blocks = []*bpl.Block{{Label: "entry", Transfer: &bpl.Return{}}}
	}
	seed := make([]bpl.Cmd, 0, len(info.Params))
	for _, mp := range info.Params {
		seed = append(seed, mp.EntryCopy())
	}
	blocks[0].Prepend(seed...)

	var locals []*bpl.Variable
	for _, mp := range info.Params {
		if !mp.OutIsFormal() {
			locals = append(locals, mp.Out)
		}
	}
	locals = append(locals, sink.Locals()...)

	impl := &bpl.Implementation{Proc: info.Proc, Locals: locals, Blocks: blocks}
	if err := impl.Validate(); err != nil {
		return fmt.Errorf("translate body of %s: %w", name, err)
	}
	attrs, err := TranslateAttributes(m.Attributes)
	if err != nil {
		return fmt.Errorf("attributes of %s: %w", name, err)
	}
	impl.Attributes = attrs
	sink.Program.Add(impl)
	log.Debugf("translated method %s: %d block(s), %d local(s)", name, len(blocks), len(locals))
	return nil
}

func (tr *Translator) translateBody(sink *Sink, m *meta.MethodDefinition) ([]*bpl.Block, error) {
	if tr.factory == nil {
		return nil, nil
	}
	return tr.factory.NewStatementTranslator(sink, tr.debug).TranslateBody(m, sink)
}
