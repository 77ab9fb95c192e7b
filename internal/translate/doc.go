// Package translate turns a meta.Assembly into a bpl.Program.
//
// The Translator walks the input graph depth-first. Classes contribute field
// storage, one procedure and one implementation per method, and their nested
// types. Delegate types are only recorded; once the whole assembly has been
// visited, one dispatch procedure is synthesized per recorded delegate,
// covering every target registered against it during the walk.
//
// Per-statement translation is delegated to a StatementTranslator, created
// once per method by a StatementTranslatorFactory. The translator hands it
// the run's Sink, which owns every symbol table, the delegate registry and
// the per-run name counters.
//
// # Calling convention
//
// Every source parameter becomes a MethodParameter with an input formal
// ("x$in") holding the call-time value, and an out-copy the body mutates: a
// local ("x") for value parameters, an output formal ("x$out") for ref and
// out parameters. Each implementation starts by copying every in-formal into
// its out-copy. Procedures always carry a leading receiver formal "this",
// and non-void methods end with an output formal "$result".
//
// # Failure
//
// Unsupported shapes (abstract methods, types that are neither classes nor
// delegates, attribute literals of other kinds) produce an
// *UnsupportedFeatureError. Any error aborts the run and Run returns a nil
// Result; a partially built program is never handed out.
package translate
