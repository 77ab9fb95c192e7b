package bpl

import (
	"fmt"
	"strings"
)

// Print renders p as Boogie text. Output is deterministic: declarations
// appear in program order, one blank line between them.
func Print(p *Program) string {
	var b strings.Builder
	for i, d := range p.Decls {
		if i > 0 {
			b.WriteString("\n")
		}
		printDecl(&b, d)
	}
	return b.String()
}

func printDecl(b *strings.Builder, d Decl) {
	switch d := d.(type) {
	case *TypeDecl:
		fmt.Fprintf(b, "type %s;\n", d.Name)
	case *Constant:
		unique := ""
		if d.Unique {
			unique = "unique "
		}
		fmt.Fprintf(b, "const %s%s: %s;\n", unique, d.Name, d.Type)
	case *GlobalVariable:
		fmt.Fprintf(b, "var %s: %s;\n", d.Name, d.Type)
	case *Procedure:
		b.WriteString("procedure ")
		b.WriteString(attributePrefix(d.Attributes))
		b.WriteString(signature(d))
		b.WriteString(";\n")
	case *Implementation:
		printImplementation(b, d)
	}
}

func signature(p *Procedure) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString("(")
	b.WriteString(joinDecls(p.InParams))
	b.WriteString(")")
	if len(p.OutParams) > 0 {
		b.WriteString(" returns (")
		b.WriteString(joinDecls(p.OutParams))
		b.WriteString(")")
	}
	return b.String()
}

func joinDecls(vars []*Variable) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.Decl()
	}
	return strings.Join(parts, ", ")
}

func printImplementation(b *strings.Builder, impl *Implementation) {
	b.WriteString("implementation ")
	b.WriteString(attributePrefix(impl.Attributes))
	b.WriteString(signature(impl.Proc))
	b.WriteString("\n{\n")
	for _, v := range impl.Locals {
		fmt.Fprintf(b, "  var %s;\n", v.Decl())
	}
	if len(impl.Locals) > 0 {
		b.WriteString("\n")
	}
	labels := make(map[BlockID]string, len(impl.Blocks))
	for _, blk := range impl.Blocks {
		labels[blk.ID] = blk.Label
	}
	for i, blk := range impl.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "  %s:\n", blk.Label)
		for _, c := range blk.Cmds {
			fmt.Fprintf(b, "    %s\n", c)
		}
		fmt.Fprintf(b, "    %s\n", transferString(blk.Transfer, labels))
	}
	b.WriteString("}\n")
}

func transferString(t Transfer, labels map[BlockID]string) string {
	switch t := t.(type) {
	case *Goto:
		names := make([]string, len(t.Targets))
		for i, id := range t.Targets {
			names[i] = labels[id]
		}
		return "goto " + strings.Join(names, ", ") + ";"
	default:
		return "return;"
	}
}
