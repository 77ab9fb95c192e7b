package translate

import (
	"github.com/roach88/bct/internal/bpl"
)

// synthesizeDispatch builds the implementation of a delegate's Invoke
// procedure as a case split over its registered targets:
//
//	start:      goto label_<c1>, ..., label_<cn>, blocked;
//	label_<ci>: assume this == ci; call outs := ci(ins); return;
//	blocked:    assume false; return;
//
// Calls forward every in-formal except the receiver and receive every
// out-formal. With no targets only the blocked path remains.
func (tr *Translator) synthesizeDispatch(sink *Sink, entry DelegateEntry) (*bpl.Implementation, error) {
	invoke := entry.Type.Method("Invoke")
	if invoke == nil {
		return nil, unsupported(ErrCodeMissingInvoke, entry.Type.FullName(),
			"delegate type has no Invoke method")
	}
	sink.BeginMethod()
	info := sink.FindOrCreateProcedure(invoke)
	proc := info.Proc
	receiver := bpl.Ident(proc.InParams[0])

	ins := make([]bpl.Expr, 0, len(proc.InParams)-1)
	for _, v := range proc.InParams[1:] {
		ins = append(ins, bpl.Ident(v))
	}
	outs := make([]*bpl.IdentExpr, 0, len(proc.OutParams))
	for _, v := range proc.OutParams {
		outs = append(outs, bpl.Ident(v))
	}

	bb := bpl.NewBodyBuilder()
	start := bb.NewBlock("start")
	targets := make([]*bpl.Block, 0, len(entry.Targets)+1)
	for _, c := range entry.Targets {
		blk := bb.NewBlock("label_" + c.Name)
		blk.Add(
			bpl.Assume(bpl.Eq(receiver, c.Ident())),
			&bpl.CallCmd{Callee: c.Name, Ins: ins, Outs: outs},
		)
		blk.Transfer = &bpl.Return{}
		targets = append(targets, blk)
	}
	blocked := bb.NewBlock("blocked")
	blocked.Add(bpl.Assume(bpl.False))
	blocked.Transfer = &bpl.Return{}
	targets = append(targets, blocked)
	start.Transfer = bpl.GotoBlocks(targets...)

	log.Debugf("dispatch %s: %d target(s)", proc.Name, len(entry.Targets))
	return &bpl.Implementation{Proc: proc, Blocks: bb.Blocks()}, nil
}
