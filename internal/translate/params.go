package translate

import (
	"strconv"
	"strings"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
)

// MethodParameter pairs a source parameter with its two IR variables.
type MethodParameter struct {
	// In is the input formal holding the call-time value. Never nil.
	In *bpl.Variable

	// Out is the copy the body reads and writes: a local for value
	// parameters, an output formal for ref and out parameters.
	Out *bpl.Variable

	Underlying *meta.ParameterDefinition
}

// NewMethodParameter builds the in/out pair for p with IR type typ.
func NewMethodParameter(p *meta.ParameterDefinition, typ bpl.Type) *MethodParameter {
	name := LegalizeIdentifier(p.Name)
	if strings.TrimSpace(name) == "" {
		name = "P" + strconv.Itoa(p.Index)
	}
	mp := &MethodParameter{
		In:         bpl.NewFormal(name+"$in", typ, true),
		Underlying: p,
	}
	if p.IsByReference() {
		mp.Out = bpl.NewFormal(name+"$out", typ, false)
	} else {
		mp.Out = bpl.NewLocal(name, typ)
	}
	return mp
}

// OutIsFormal reports whether the out-copy is an output formal.
func (mp *MethodParameter) OutIsFormal() bool {
	return mp.Out.Kind == bpl.FormalOut
}

// EntryCopy returns the "out := in" assignment every implementation starts
// with. It is emitted for pure out parameters too.
func (mp *MethodParameter) EntryCopy() *bpl.AssignCmd {
	return bpl.SimpleAssign(mp.Out, bpl.Ident(mp.In))
}

func (mp *MethodParameter) String() string {
	return mp.Underlying.Name
}

// BoogieType maps a source type to its IR type: booleans to bool, integral
// types, chars and enums to int, floating point to real and everything else
// (strings, arrays, classes, structs, generic parameters) to Ref.
func BoogieType(t *meta.TypeRef) bpl.Type {
	switch {
	case t == nil:
		return bpl.Ref
	case t.IsArray() || t.GenericParameter != "":
		return bpl.Ref
	case t.Code == meta.Boolean:
		return bpl.Bool
	case t.Code.IsIntegral() || t.IsEnum:
		return bpl.Int
	case t.Code.IsFloatingPoint():
		return bpl.Real
	default:
		return bpl.Ref
	}
}

// buildSignature marshals every parameter of m and returns the parameters,
// the optional result formal and the procedure formals. The receiver formal
// comes first with type receiver.
func buildSignature(m *meta.MethodDefinition, receiver bpl.Type) (params []*MethodParameter, result *bpl.Variable, ins, outs []*bpl.Variable) {
	ins = append(ins, bpl.NewFormal("this", receiver, true))
	for _, p := range m.Parameters {
		mp := NewMethodParameter(p, BoogieType(p.Type))
		params = append(params, mp)
		ins = append(ins, mp.In)
		if mp.OutIsFormal() {
			outs = append(outs, mp.Out)
		}
	}
	if !m.IsVoid() {
		result = bpl.NewFormal("$result", BoogieType(m.ReturnType), false)
		outs = append(outs, result)
	}
	return params, result, ins, outs
}
