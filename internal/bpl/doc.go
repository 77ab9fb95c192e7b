// Package bpl provides the flat procedural verification IR produced by the
// translator: procedures, implementations made of labeled basic blocks, and
// a small command set (assign, assume, call, goto, return).
//
// Blocks are identified by BlockID within one implementation. Control
// transfer is explicit: every block ends in exactly one Transfer, either a
// *Return or a multi-way *Goto whose targets are BlockIDs rather than label
// strings. Labels exist only for printing.
//
// The package also renders programs as Boogie text (Print) and as canonical
// JSON (MarshalCanonical) for content-addressed hashing (ProgramHash).
package bpl
