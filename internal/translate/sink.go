package translate

import (
	"strconv"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
)

// ProcedureInfo is the procedure created for one method, together with the
// marshalled parameters backing its formals.
type ProcedureInfo struct {
	Proc   *bpl.Procedure
	Method *meta.MethodDefinition
	Params []*MethodParameter
	Result *bpl.Variable
}

// Sink is the state of one translation run: the output program, symbol
// tables for procedures, fields and record procedures, the delegate
// registry, the name counters and the slots of the method being visited.
//
// A Sink belongs to exactly one run and is not safe for concurrent use.
type Sink struct {
	Program *bpl.Program
	Namer   *Namer

	registry  *DelegateRegistry
	procs     map[*meta.MethodDefinition]*ProcedureInfo
	procNames map[string]*meta.MethodDefinition
	fields    map[*meta.FieldDefinition]*bpl.GlobalVariable
	records   map[string]*bpl.Procedure
	constants map[string]*bpl.Constant

	// FormalMap holds the current method's parameters in source order.
	FormalMap []*MethodParameter

	// RetVariable is the current method's result formal, nil for void.
	RetVariable *bpl.Variable

	localVarMap map[string]*bpl.Variable
	locals      []*bpl.Variable
}

// NewSink returns the state for a fresh run.
func NewSink() *Sink {
	return &Sink{
		Program:     bpl.NewProgram(),
		Namer:       &Namer{},
		registry:    NewDelegateRegistry(),
		procs:       make(map[*meta.MethodDefinition]*ProcedureInfo),
		procNames:   make(map[string]*meta.MethodDefinition),
		fields:      make(map[*meta.FieldDefinition]*bpl.GlobalVariable),
		records:     make(map[string]*bpl.Procedure),
		constants:   make(map[string]*bpl.Constant),
		localVarMap: make(map[string]*bpl.Variable),
	}
}

// BeginMethod clears the per-method slots.
func (s *Sink) BeginMethod() {
	s.FormalMap = nil
	s.RetVariable = nil
	s.localVarMap = make(map[string]*bpl.Variable)
	s.locals = nil
}

// bindMethod points the per-method slots at info's parameters.
func (s *Sink) bindMethod(info *ProcedureInfo) {
	s.FormalMap = info.Params
	s.RetVariable = info.Result
}

// FindOrCreateProcedure returns the procedure for m, creating and adding it
// to the program on first use. Delegate Invoke methods get an int receiver,
// the identity of the target; every other method gets a Ref receiver.
func (s *Sink) FindOrCreateProcedure(m *meta.MethodDefinition) *ProcedureInfo {
	if info, ok := s.procs[m]; ok {
		return info
	}
	receiver := bpl.Type(bpl.Ref)
	if m.ContainingType != nil && m.ContainingType.Kind == meta.KindDelegate {
		receiver = bpl.Int
	}
	params, result, ins, outs := buildSignature(m, receiver)
	info := &ProcedureInfo{
		Proc: &bpl.Procedure{
			Name:      s.claimName(m),
			InParams:  ins,
			OutParams: outs,
		},
		Method: m,
		Params: params,
		Result: result,
	}
	s.procs[m] = info
	s.Program.Add(info.Proc)
	return info
}

// claimName reserves the unique name of m. A different method whose
// signature legalizes to an already claimed name gets a "#<n>" suffix.
func (s *Sink) claimName(m *meta.MethodDefinition) string {
	base := UniqueMethodName(m)
	name := base
	for n := 1; ; n++ {
		owner, taken := s.procNames[name]
		if !taken || owner == m {
			break
		}
		name = base + "#" + strconv.Itoa(n)
	}
	s.procNames[name] = m
	return name
}

// FindOrCreateFieldVariable returns the global holding f. Static fields map
// to a plain variable, instance fields to a map indexed by the receiver.
func (s *Sink) FindOrCreateFieldVariable(f *meta.FieldDefinition) *bpl.GlobalVariable {
	if g, ok := s.fields[f]; ok {
		return g
	}
	typ := BoogieType(f.Type)
	if !f.IsStatic {
		typ = &bpl.MapType{Key: bpl.Ref, Value: typ}
	}
	name := f.Name
	if f.ContainingType != nil {
		name = f.ContainingType.FullName() + "." + f.Name
	}
	g := &bpl.GlobalVariable{Name: LegalizeIdentifier(name), Type: typ}
	s.fields[f] = g
	s.Program.Add(g)
	return g
}

// FindOrCreateRecordProcedure returns the body-less procedure that logs a
// value of type t for counterexample reconstruction.
func (s *Sink) FindOrCreateRecordProcedure(t bpl.Type) *bpl.Procedure {
	key := t.String()
	if p, ok := s.records[key]; ok {
		return p
	}
	p := &bpl.Procedure{
		Name:     "boogie_si_record_" + LegalizeIdentifier(key),
		InParams: []*bpl.Variable{bpl.NewFormal("x", t, true)},
	}
	s.records[key] = p
	s.Program.Add(p)
	return p
}

// AddDelegateType records a delegate type for dispatch synthesis.
func (s *Sink) AddDelegateType(t *meta.TypeDefinition) error {
	return s.registry.AddType(t)
}

// RegisterDelegateTarget records target as a possible callee of delegate
// and returns the unique constant standing for it. The constant carries the
// target's procedure name.
func (s *Sink) RegisterDelegateTarget(delegate *meta.TypeDefinition, target *meta.MethodDefinition) (*bpl.Constant, error) {
	name := s.FindOrCreateProcedure(target).Proc.Name
	c, ok := s.constants[name]
	if !ok {
		c = &bpl.Constant{Name: name, Type: bpl.Int, Unique: true}
		s.constants[name] = c
		s.Program.Add(c)
	}
	if err := s.registry.Register(delegate, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delegates exposes the registry, mainly for inspection in tests.
func (s *Sink) Delegates() *DelegateRegistry {
	return s.registry
}

// NewLocal declares a local of the current method. Declaring an existing
// name returns the existing variable.
func (s *Sink) NewLocal(name string, t bpl.Type) *bpl.Variable {
	if v, ok := s.localVarMap[name]; ok {
		return v
	}
	v := bpl.NewLocal(name, t)
	s.localVarMap[name] = v
	s.locals = append(s.locals, v)
	return v
}

// NewTemp declares a fresh "$tmp<n>" local.
func (s *Sink) NewTemp(t bpl.Type) *bpl.Variable {
	return s.NewLocal(s.Namer.TempVarName(), t)
}

// Local returns the current method's local with the given name.
func (s *Sink) Local(name string) (*bpl.Variable, bool) {
	v, ok := s.localVarMap[name]
	return v, ok
}

// Locals returns the locals declared for the current method, in order.
func (s *Sink) Locals() []*bpl.Variable {
	return s.locals
}

// Parameter returns the current method's parameter with the given source
// name.
func (s *Sink) Parameter(name string) (*MethodParameter, bool) {
	for _, mp := range s.FormalMap {
		if mp.Underlying.Name == name {
			return mp, true
		}
	}
	return nil, false
}
