package translate

import (
	"math"
	"strings"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
)

// TranslateAttributes converts method attributes into IR attributes.
//
// The key is the attribute type's full name without a trailing "Attribute",
// legalized. Boolean, Int32 and String literals translate to bool, int and
// string parameters; any other literal kind, or an Int32 value outside the
// 32-bit range, fails with INVALID_ATTRIBUTE_ARGUMENT.
// Non-literal arguments are skipped and the remaining parameters shift left,
// so the IR arity can be smaller than the source arity.
func TranslateAttributes(attrs []*meta.CustomAttribute) ([]*bpl.Attribute, error) {
	out := make([]*bpl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		key := attributeKey(a)
		params := make([]bpl.Expr, 0, len(a.Arguments))
		for _, arg := range a.Arguments {
			c, ok := arg.(*meta.MetadataConstant)
			if !ok {
				continue
			}
			e, err := constantExpr(key, c)
			if err != nil {
				return nil, err
			}
			params = append(params, e)
		}
		out = append(out, &bpl.Attribute{Key: key, Params: params})
	}
	return out, nil
}

func attributeKey(a *meta.CustomAttribute) string {
	return LegalizeIdentifier(strings.TrimSuffix(a.Type.String(), "Attribute"))
}

func constantExpr(key string, c *meta.MetadataConstant) (bpl.Expr, error) {
	switch c.Type {
	case meta.Boolean:
		if b, ok := c.Value.(bool); ok {
			return bpl.BoolLit(b), nil
		}
	case meta.Int32:
		if v, ok := int32Value(c.Value); ok {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, unsupported(ErrCodeInvalidAttributeArgument, key,
					"attribute argument %d does not fit in %s", v, c.Type)
			}
			return bpl.IntLit(v), nil
		}
	case meta.String:
		if s, ok := c.Value.(string); ok {
			return bpl.StringLit(s), nil
		}
	default:
		return nil, unsupported(ErrCodeInvalidAttributeArgument, key,
			"attribute argument of type %s has no IR representation", c.Type)
	}
	return nil, unsupported(ErrCodeInvalidAttributeArgument, key,
		"attribute argument %v does not match its declared type %s", c.Value, c.Type)
}

// int32Value widens an integer value for the range check.
func int32Value(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
