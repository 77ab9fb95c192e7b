// Package meta provides the read-only program representation consumed by the
// translator: assemblies, modules, types, methods, fields, parameters and
// custom attributes.
//
// This package contains type definitions only. Entities are built once by a
// loader (or a test fixture) and never mutated during a translation run.
// Identity is pointer identity: two *MethodDefinition values describe the same
// method only if they are the same pointer.
package meta
