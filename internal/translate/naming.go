package translate

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/bct/internal/meta"
)

// arrayMarkers rewrites documentation-id array suffixes into readable
// tokens. Multi-dimensional markers go first so "[]" never splits them.
var arrayMarkers = strings.NewReplacer(
	"[0:,0:,0:,0:,0:]", "5DArray",
	"[0:,0:,0:,0:]", "4DArray",
	"[0:,0:,0:]", "3DArray",
	"[0:,0:]", "2DArray",
	"[]", "array",
)

// illegalIdentChar matches anything outside the Boogie identifier alphabet:
// letters, digits and ' ~ # $ ^ _ . ? `.
var illegalIdentChar = regexp.MustCompile("[^A-Za-z0-9'~#$^_.?`]")

// LegalizeIdentifier rewrites s into a legal IR identifier. Array markers of
// rank one to five become "array", "2DArray" ... "5DArray"; every other
// character outside the identifier alphabet becomes '$', including NUL,
// non-ASCII runes and invalid UTF-8 bytes.
//
// LegalizeIdentifier is idempotent.
func LegalizeIdentifier(s string) string {
	s = arrayMarkers.Replace(s)
	return illegalIdentChar.ReplaceAllLiteralString(s, "$")
}

// DocumentationID renders the documentation-style signature of m, for
// example "M:Acme.List`1.Add(`0,System.Int32[]@)". Parameterless methods
// have no parentheses.
func DocumentationID(m *meta.MethodDefinition) string {
	var b strings.Builder
	b.WriteString("M:")
	generics := ConsolidatedGenericParameters(m.ContainingType)
	if m.ContainingType != nil {
		b.WriteString(typeDocName(m.ContainingType))
		b.WriteByte('.')
	}
	b.WriteString(methodDocName(m))
	if len(m.Parameters) > 0 {
		b.WriteByte('(')
		for i, p := range m.Parameters {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(typeRefDocName(p.Type, generics))
			if p.IsByReference() {
				b.WriteByte('@')
			}
		}
		b.WriteByte(')')
	}
	return b.String()
}

func methodDocName(m *meta.MethodDefinition) string {
	if m.IsConstructor {
		if m.IsStatic {
			return "#cctor"
		}
		return "#ctor"
	}
	return m.Name
}

func typeDocName(t *meta.TypeDefinition) string {
	name := t.Name
	if n := len(t.GenericParameters); n > 0 {
		name += "`" + strconv.Itoa(n)
	}
	if t.DeclaringType != nil {
		return typeDocName(t.DeclaringType) + "." + name
	}
	if t.Namespace == "" {
		return name
	}
	return t.Namespace + "." + name
}

func typeRefDocName(t *meta.TypeRef, generics []string) string {
	switch {
	case t == nil:
		return meta.Void.String()
	case t.IsArray():
		return typeRefDocName(t.Element, generics) + meta.ArraySuffix(t.Rank)
	case t.GenericParameter != "":
		if i := slices.Index(generics, t.GenericParameter); i >= 0 {
			return "`" + strconv.Itoa(i)
		}
		return t.GenericParameter
	case t.Definition != nil:
		return typeDocName(t.Definition)
	default:
		return t.Name
	}
}

// UniqueMethodName derives the procedure name of m from its documentation
// id: the "M:" prefix is stripped, trailing ')' removed and the rest
// legalized. Distinct signatures yield distinct names; the Sink guards the
// rare case where legalization maps two signatures onto one name.
func UniqueMethodName(m *meta.MethodDefinition) string {
	s := strings.TrimPrefix(DocumentationID(m), "M:")
	s = strings.TrimRight(s, ")")
	return LegalizeIdentifier(s)
}

// Namer hands out run-scoped names for temporaries and exception-handling
// blocks. Each counter increases monotonically for the lifetime of the
// Namer, which is owned by exactly one Sink.
type Namer struct {
	tmp     int
	catch   int
	finally int
}

// TempVarName returns "$tmp0", "$tmp1", ...
func (n *Namer) TempVarName() string {
	name := "$tmp" + strconv.Itoa(n.tmp)
	n.tmp++
	return name
}

// CatchClauseName returns "catch0", "catch1", ...
func (n *Namer) CatchClauseName() string {
	name := "catch" + strconv.Itoa(n.catch)
	n.catch++
	return name
}

// FinallyClauseName returns "finally0", "finally1", ...
func (n *Namer) FinallyClauseName() string {
	name := "finally" + strconv.Itoa(n.finally)
	n.finally++
	return name
}
