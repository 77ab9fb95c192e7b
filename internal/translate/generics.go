package translate

import "github.com/roach88/bct/internal/meta"

// ConsolidatedGenericParameters returns the full generic parameter list of
// t: the outermost declaring type's parameters first, then each nested
// level's own. A nested type's own parameters are positioned after those of
// every enclosing type.
func ConsolidatedGenericParameters(t *meta.TypeDefinition) []string {
	var params []string
	consolidate(t, &params)
	return params
}

func consolidate(t *meta.TypeDefinition, params *[]string) {
	if t == nil {
		return
	}
	consolidate(t.DeclaringType, params)
	*params = append(*params, t.GenericParameters...)
}
