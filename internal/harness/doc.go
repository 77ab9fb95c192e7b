// Package harness provides conformance testing for the translator.
//
// A scenario names an assembly description, the expected outcome of
// translating it and assertions over the produced program.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: counter
//	description: "Instance field updates become map stores"
//	assembly: ../assemblies/counter.yaml
//	expect:
//	  status: ok
//	assertions:
//	  - type: procedure_exists
//	    name: Acme.Counter.Add$System.Int32
//	  - type: program_contains
//	    text: "Acme.Counter.count[this] :="
//
// A failing translation is expected with status error and a code:
//
//	expect:
//	  status: error
//	  code: ABSTRACT_METHOD
//	  message: abstract methods
//
// The assembly path is relative to the scenario file. Source locations in
// the program are labeled with the assembly's base name, so output does not
// depend on the working directory.
//
// # Assertion Types
//
//   - procedure_exists: a procedure with the given name is declared
//   - implementation_exists: the named procedure has an implementation
//   - constant_exists: a delegate target constant with the given name exists
//   - procedure_count: exactly count procedures are declared
//   - program_contains: the printed program contains text
//
// # Golden Files
//
// The printed program of a successful scenario can be compared with
// golden/<scenario file name>.golden next to the scenario file.
package harness
