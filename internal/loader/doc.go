// Package loader reads assembly descriptions, the textual stand-in for
// compiled assemblies, and builds meta definitions from them.
//
// Two formats carry the same shape. CUE documents key modules, types,
// members and nested types by name; YAML documents use lists. Both record
// each method's position, which becomes its meta.Location and so feeds the
// source locations emitted by the statement translator.
//
// Type strings are builtin keywords (void, bool, char, sbyte, byte, short,
// ushort, int, uint, long, ulong, float, double, string, object, decimal),
// in-scope generic parameters, or declared types by full or unique short
// name, each optionally followed by array suffixes ("[]", "[,]", ...).
//
// Every failure is a *LoadError carrying an E00x code.
package loader
