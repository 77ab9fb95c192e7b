package stmt

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
	"github.com/roach88/bct/internal/translate"
)

var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	"<=": 4,
	">":  4,
	">=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
}

// lowerer emits blocks for one method body. cur is the block receiving
// commands; it is nil right after a return, until the next statement opens
// an unreachable block.
type lowerer struct {
	idx    *meta.Index
	sink   *translate.Sink
	method *meta.MethodDefinition
	this   *bpl.Variable

	bb     *bpl.BodyBuilder
	cur    *bpl.Block
	labels int
	pos    lexer.Position
}

func newLowerer(idx *meta.Index, sink *translate.Sink, m *meta.MethodDefinition) *lowerer {
	info := sink.FindOrCreateProcedure(m)
	l := &lowerer{
		idx:    idx,
		sink:   sink,
		method: m,
		this:   info.Proc.InParams[0],
		bb:     bpl.NewBodyBuilder(),
	}
	l.cur = l.bb.NewBlock("entry")
	return l
}

// finish closes the open block with a return and hands out the blocks.
func (l *lowerer) finish() []*bpl.Block {
	if l.cur != nil && l.cur.Transfer == nil {
		l.cur.Transfer = &bpl.Return{}
	}
	return l.bb.Blocks()
}

func (l *lowerer) label(prefix string) string {
	l.labels++
	return prefix + strconv.Itoa(l.labels)
}

func (l *lowerer) current() *bpl.Block {
	if l.cur == nil {
		l.cur = l.bb.NewBlock(l.label("unreachable"))
	}
	return l.cur
}

// join continues at a fresh block reached from every open end. With no open
// ends control cannot get past the construct.
func (l *lowerer) join(label string, ends ...*bpl.Block) {
	var open []*bpl.Block
	for _, b := range ends {
		if b != nil {
			open = append(open, b)
		}
	}
	if len(open) == 0 {
		l.cur = nil
		return
	}
	j := l.bb.NewBlock(label)
	for _, b := range open {
		b.Transfer = bpl.GotoBlocks(j)
	}
	l.cur = j
}

func (l *lowerer) stmts(list []*Stmt) error {
	for _, s := range list {
		if err := l.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) stmt(s *Stmt) error {
	l.pos = s.Pos
	switch {
	case s.Var != nil:
		return l.varStmt(s.Var)
	case s.Assume != nil:
		cond, err := l.condition(s.Assume.Cond)
		if err != nil {
			return err
		}
		l.current().Add(bpl.Assume(cond))
		return nil
	case s.Record != nil:
		return l.record(s.Record)
	case s.Return != nil:
		return l.ret(s.Return)
	case s.If != nil:
		return l.ifStmt(s.If)
	case s.Try != nil:
		return l.try(s.Try)
	case s.Call != nil:
		return l.call(s.Call)
	case s.Assign != nil:
		return l.assign(s.Assign)
	default:
		return errorf(s.Pos, "empty statement")
	}
}

func (l *lowerer) varStmt(s *VarStmt) error {
	switch s.Name {
	case "this", "result":
		return errorf(l.pos, "%q is reserved", s.Name)
	}
	if _, ok := l.sink.Local(s.Name); ok {
		return errorf(l.pos, "%s redeclared", s.Name)
	}
	if _, ok := l.sink.Parameter(s.Name); ok {
		return errorf(l.pos, "%s shadows a parameter", s.Name)
	}
	l.sink.NewLocal(s.Name, varType(s.Type))
	return nil
}

func varType(name string) bpl.Type {
	switch name {
	case "bool":
		return bpl.Bool
	case "real":
		return bpl.Real
	case "ref":
		return bpl.Ref
	default:
		return bpl.Int
	}
}

func (l *lowerer) record(s *RecordStmt) error {
	v, err := l.expr(s.Value)
	if err != nil {
		return err
	}
	proc := l.sink.FindOrCreateRecordProcedure(v.Type())
	l.current().Add(&bpl.CallCmd{
		Callee: proc.Name,
		Ins:    []bpl.Expr{v},
		Attributes: []*bpl.Attribute{
			{Key: "cexpr", Params: []bpl.Expr{bpl.StringLit(s.Label)}},
		},
	})
	return nil
}

func (l *lowerer) ret(s *ReturnStmt) error {
	result := l.sink.RetVariable
	switch {
	case s.Value != nil && result == nil:
		return errorf(l.pos, "return with a value in a void method")
	case s.Value == nil && result != nil:
		return errorf(l.pos, "missing return value")
	case s.Value != nil:
		v, err := l.typed(s.Value, result.Type)
		if err != nil {
			return err
		}
		l.current().Add(bpl.SimpleAssign(result, v))
	}
	l.current().Transfer = &bpl.Return{}
	l.cur = nil
	return nil
}

func (l *lowerer) ifStmt(s *IfStmt) error {
	cond, err := l.condition(s.Cond)
	if err != nil {
		return err
	}
	from := l.current()
	n := l.label("")
	then := l.bb.NewBlock("then" + n)
	els := l.bb.NewBlock("else" + n)
	from.Transfer = bpl.GotoBlocks(then, els)

	then.Add(bpl.Assume(cond))
	l.cur = then
	if err := l.stmts(s.Then); err != nil {
		return err
	}
	thenEnd := l.cur

	els.Add(bpl.Assume(&bpl.UnaryExpr{Op: bpl.OpNot, X: cond}))
	l.cur = els
	if s.Else != nil {
		if err := l.stmts(s.Else.Stmts); err != nil {
			return err
		}
	}
	l.join("join"+n, thenEnd, l.cur)
	return nil
}

func (l *lowerer) try(s *TryStmt) error {
	from := l.current()
	n := l.label("")
	body := l.bb.NewBlock("try" + n)
	catch := l.bb.NewBlock(l.sink.Namer.CatchClauseName())
	from.Transfer = bpl.GotoBlocks(body, catch)

	l.cur = body
	if err := l.stmts(s.Body); err != nil {
		return err
	}
	bodyEnd := l.cur

	l.cur = catch
	if err := l.stmts(s.Catch); err != nil {
		return err
	}
	catchEnd := l.cur

	if s.Finally == nil {
		l.join("join"+n, bodyEnd, catchEnd)
		return nil
	}
	fin := l.bb.NewBlock(l.sink.Namer.FinallyClauseName())
	for _, end := range []*bpl.Block{bodyEnd, catchEnd} {
		if end != nil {
			end.Transfer = bpl.GotoBlocks(fin)
		}
	}
	l.cur = fin
	return l.stmts(s.Finally.Stmts)
}

func (l *lowerer) call(s *CallStmt) error {
	var info *translate.ProcedureInfo
	if s.Invoke {
		dt, err := l.delegateType(s.Callee)
		if err != nil {
			return err
		}
		invoke := dt.Method("Invoke")
		if invoke == nil {
			return errorf(l.pos, "delegate %s has no Invoke method", dt.FullName())
		}
		info = l.sink.FindOrCreateProcedure(invoke)
	} else {
		m, err := l.resolveMethod(s.Callee, len(s.Args))
		if err != nil {
			return err
		}
		info = l.sink.FindOrCreateProcedure(m)
	}
	proc := info.Proc

	formals := proc.InParams
	var ins []bpl.Expr
	if !s.Invoke && len(s.Args) == len(formals)-1 {
		ins = append(ins, bpl.Ident(l.this))
		formals = formals[1:]
	}
	if len(s.Args) != len(formals) {
		return errorf(l.pos, "%s expects %d arguments, got %d", s.Callee, len(proc.InParams), len(s.Args))
	}
	for i, a := range s.Args {
		v, err := l.typed(a, formals[i].Type)
		if err != nil {
			return err
		}
		ins = append(ins, v)
	}

	if len(s.Outs) > len(proc.OutParams) {
		return errorf(l.pos, "%s returns %d values, got %d targets", s.Callee, len(proc.OutParams), len(s.Outs))
	}
	outs := make([]*bpl.IdentExpr, 0, len(proc.OutParams))
	for i, formal := range proc.OutParams {
		if i >= len(s.Outs) {
			outs = append(outs, bpl.Ident(l.sink.NewTemp(formal.Type)))
			continue
		}
		target, err := l.lvalue(s.Outs[i])
		if err != nil {
			return err
		}
		id, ok := target.(*bpl.IdentExpr)
		if !ok {
			return errorf(l.pos, "call output %s must be a variable", s.Outs[i])
		}
		if !bpl.TypesEqual(id.Type(), formal.Type) {
			return errorf(l.pos, "call output %s has type %s, want %s", s.Outs[i], id.Type(), formal.Type)
		}
		outs = append(outs, id)
	}

	l.current().Add(&bpl.CallCmd{Callee: proc.Name, Ins: ins, Outs: outs})
	return nil
}

func (l *lowerer) assign(s *AssignStmt) error {
	target, err := l.lvalue(s.Target)
	if err != nil {
		return err
	}
	var rhs bpl.Expr
	if s.Delegate != nil {
		rhs, err = l.delegate(s.Delegate)
	} else {
		rhs, err = l.expr(s.Value)
	}
	if err != nil {
		return err
	}
	if !bpl.TypesEqual(target.Type(), rhs.Type()) {
		return errorf(l.pos, "cannot assign %s to %s of type %s", rhs.Type(), s.Target, target.Type())
	}
	l.current().Add(&bpl.AssignCmd{Lhs: []bpl.Expr{target}, Rhs: []bpl.Expr{rhs}})
	return nil
}

// delegate registers the target against the delegate type and yields the
// target's unique constant.
func (l *lowerer) delegate(d *DelegateExpr) (bpl.Expr, error) {
	dt, err := l.delegateType(d.Type)
	if err != nil {
		return nil, err
	}
	methods := l.idx.Methods(d.Target.String())
	switch len(methods) {
	case 0:
		return nil, errorf(l.pos, "unknown method %s", d.Target)
	case 1:
	default:
		return nil, errorf(l.pos, "delegate target %s is overloaded", d.Target)
	}
	if invoke := dt.Method("Invoke"); invoke != nil {
		target := methods[0]
		if len(target.Parameters) != len(invoke.Parameters) || outArity(target) != outArity(invoke) {
			return nil, errorf(l.pos, "delegate target %s does not match the signature of %s.Invoke",
				d.Target, dt.FullName())
		}
	}
	c, err := l.sink.RegisterDelegateTarget(dt, methods[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.pos, err)
	}
	return c.Ident(), nil
}

// outArity counts the out-formals of m: one per by-reference or out
// parameter, plus the result of a non-void method.
func outArity(m *meta.MethodDefinition) int {
	n := 0
	for _, p := range m.Parameters {
		if p.IsByReference() {
			n++
		}
	}
	if !m.IsVoid() {
		n++
	}
	return n
}

func (l *lowerer) delegateType(p *Path) (*meta.TypeDefinition, error) {
	t, ok := l.idx.Type(p.String())
	if !ok {
		return nil, errorf(l.pos, "unknown type %s", p)
	}
	if t.Kind != meta.KindDelegate {
		return nil, errorf(l.pos, "%s is a %s, not a delegate", p, t.Kind)
	}
	return t, nil
}

// resolveMethod picks the overload of p matching nargs arguments, preferring
// an explicit receiver argument over an implicit one.
func (l *lowerer) resolveMethod(p *Path, nargs int) (*meta.MethodDefinition, error) {
	methods := l.idx.Methods(p.String())
	if len(methods) == 0 {
		return nil, errorf(l.pos, "unknown method %s", p)
	}
	var explicit, implicit []*meta.MethodDefinition
	for _, m := range methods {
		switch nargs {
		case len(m.Parameters) + 1:
			explicit = append(explicit, m)
		case len(m.Parameters):
			implicit = append(implicit, m)
		}
	}
	for _, candidates := range [][]*meta.MethodDefinition{explicit, implicit} {
		switch len(candidates) {
		case 0:
			continue
		case 1:
			return candidates[0], nil
		default:
			return nil, errorf(l.pos, "call to %s with %d arguments is ambiguous", p, nargs)
		}
	}
	return nil, errorf(l.pos, "no overload of %s takes %d arguments", p, nargs)
}

// lvalue resolves an assignment target: a variable or field storage.
func (l *lowerer) lvalue(p *Path) (bpl.Expr, error) {
	if len(p.Parts) == 1 && p.Parts[0] == "this" {
		return nil, errorf(l.pos, "cannot assign to this")
	}
	return l.resolve(p)
}

func (l *lowerer) resolve(p *Path) (bpl.Expr, error) {
	if len(p.Parts) == 1 {
		return l.variable(p.Parts[0])
	}
	if len(p.Parts) == 2 && p.Parts[0] == "this" {
		return l.instanceField(p.Parts[1])
	}
	f, ok := l.idx.Field(p.String())
	if !ok {
		return nil, errorf(l.pos, "unknown field %s", p)
	}
	if !f.IsStatic {
		return nil, errorf(l.pos, "%s is an instance field", p)
	}
	return l.sink.FindOrCreateFieldVariable(f).Ident(), nil
}

func (l *lowerer) variable(name string) (bpl.Expr, error) {
	switch name {
	case "this":
		return bpl.Ident(l.this), nil
	case "result":
		if l.sink.RetVariable == nil {
			return nil, errorf(l.pos, "result used in a void method")
		}
		return bpl.Ident(l.sink.RetVariable), nil
	}
	if v, ok := l.sink.Local(name); ok {
		return bpl.Ident(v), nil
	}
	if mp, ok := l.sink.Parameter(name); ok {
		return bpl.Ident(mp.Out), nil
	}
	return nil, errorf(l.pos, "unknown identifier %s", name)
}

func (l *lowerer) instanceField(name string) (bpl.Expr, error) {
	owner := l.method.ContainingType
	if owner == nil {
		return nil, errorf(l.pos, "this.%s outside a type", name)
	}
	f, ok := l.idx.Field(owner.FullName() + "." + name)
	if !ok {
		return nil, errorf(l.pos, "%s has no field %s", owner.FullName(), name)
	}
	if f.IsStatic {
		return nil, errorf(l.pos, "%s.%s is static", owner.FullName(), name)
	}
	g := l.sink.FindOrCreateFieldVariable(f)
	return &bpl.MapSelect{Map: g.Ident(), Index: bpl.Ident(l.this)}, nil
}

func (l *lowerer) condition(e *Expr) (bpl.Expr, error) {
	return l.typed(e, bpl.Bool)
}

// typed lowers e and checks it has type want.
func (l *lowerer) typed(e *Expr, want bpl.Type) (bpl.Expr, error) {
	v, err := l.expr(e)
	if err != nil {
		return nil, err
	}
	if !bpl.TypesEqual(v.Type(), want) {
		return nil, errorf(l.pos, "%s has type %s, want %s", v, v.Type(), want)
	}
	return v, nil
}

func (l *lowerer) expr(e *Expr) (bpl.Expr, error) {
	left, err := l.unary(e.Left)
	if err != nil {
		return nil, err
	}
	i := 0
	return l.climb(left, e.Tail, &i, 1)
}

// climb folds the operator chain starting at tail[*i] into left, binding
// operators of at least minPrec.
func (l *lowerer) climb(left bpl.Expr, tail []*OpTerm, i *int, minPrec int) (bpl.Expr, error) {
	for *i < len(tail) && precedence[tail[*i].Op] >= minPrec {
		op := tail[*i]
		*i++
		right, err := l.unary(op.Right)
		if err != nil {
			return nil, err
		}
		for *i < len(tail) && precedence[tail[*i].Op] > precedence[op.Op] {
			right, err = l.climb(right, tail, i, precedence[op.Op]+1)
			if err != nil {
				return nil, err
			}
		}
		left, err = l.binary(op.Op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (l *lowerer) binary(op string, left, right bpl.Expr) (bpl.Expr, error) {
	lt, rt := left.Type(), right.Type()
	if !bpl.TypesEqual(lt, rt) {
		return nil, errorf(l.pos, "mismatched types %s and %s for %s", lt, rt, op)
	}
	bop := bpl.BinaryOp(op)
	switch bop {
	case bpl.OpAnd, bpl.OpOr:
		if !bpl.TypesEqual(lt, bpl.Bool) {
			return nil, errorf(l.pos, "operator %s needs bool operands, got %s", op, lt)
		}
	case bpl.OpEq, bpl.OpNeq:
	default:
		if !numeric(lt) {
			return nil, errorf(l.pos, "operator %s needs int or real operands, got %s", op, lt)
		}
	}
	return bpl.Binary(bop, left, right), nil
}

func numeric(t bpl.Type) bool {
	return bpl.TypesEqual(t, bpl.Int) || bpl.TypesEqual(t, bpl.Real)
}

func (l *lowerer) unary(u *Unary) (bpl.Expr, error) {
	if u.Primary != nil {
		return l.primary(u.Primary)
	}
	x, err := l.unary(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "!":
		if !bpl.TypesEqual(x.Type(), bpl.Bool) {
			return nil, errorf(l.pos, "operator ! needs a bool operand, got %s", x.Type())
		}
		return &bpl.UnaryExpr{Op: bpl.OpNot, X: x}, nil
	default:
		if !numeric(x.Type()) {
			return nil, errorf(l.pos, "operator - needs an int or real operand, got %s", x.Type())
		}
		return &bpl.UnaryExpr{Op: bpl.OpNeg, X: x}, nil
	}
}

func (l *lowerer) primary(p *Primary) (bpl.Expr, error) {
	switch {
	case p.Bool != nil:
		return bpl.BoolLit(*p.Bool == "true"), nil
	case p.Int != nil:
		return bpl.IntLit(*p.Int), nil
	case p.Path != nil:
		return l.resolve(p.Path)
	default:
		return l.expr(p.Sub)
	}
}
