// Package stmt is the reference statement translator: it parses the small
// body language attached to meta.MethodBody and lowers it to bpl blocks.
//
// A body is a sequence of statements:
//
//	var n: int;
//	n = x + 1;
//	this.count = n;
//	d = delegate Acme.Handler Acme.Targets.OnEvent;
//	call r := Acme.Util.Max(this, n, 0);
//	call invoke Acme.Handler(d, n);
//	assume n > 0;
//	record "n" n;
//	if (n > 10) { return n; } else { n = 0; }
//	try { call Acme.Util.Risky(); } catch { n = -1; } finally { record "n" n; }
//	return n;
//
// Names resolve to locals declared with var, parameters (their out-copy),
// "this", "result", instance fields as "this.f" and static fields by their
// qualified name. Call arguments may omit the receiver, in which case the
// current "this" is passed.
package stmt
