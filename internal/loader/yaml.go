package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeYAML reads the list-based YAML form:
//
//	assembly: Sample
//	modules:
//	  - name: Sample.dll
//	    types:
//	      - name: Counter
//	        namespace: Acme
//	        kind: class
//	        fields: [{name: count, type: int}]
//	        methods:
//	          - name: Add
//	            returns: int
//	            parameters: [{name: x, type: int}]
//	            body: "return x;"
func decodeYAML(filename string, src []byte) (*assemblyDoc, error) {
	var doc assemblyDoc
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("%s: %v", filename, err),
		}
	}
	doc.setFile(filename)
	return &doc, nil
}

func (d *assemblyDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain assemblyDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

func (d *moduleDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain moduleDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

func (d *typeDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain typeDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

func (d *fieldDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain fieldDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

func (d *methodDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain methodDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

func (d *paramDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain paramDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

func (d *attributeDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain attributeDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = yamlPosition("", n)
	return nil
}

// UnmarshalYAML accepts a scalar literal or a mapping with type/value or
// expr keys.
func (d *argumentDoc) UnmarshalYAML(n *yaml.Node) error {
	d.Pos = yamlPosition("", n)
	if n.Kind != yaml.MappingNode {
		return n.Decode(&d.Value)
	}
	var m struct {
		Type  string `yaml:"type"`
		Value any    `yaml:"value"`
		Expr  string `yaml:"expr"`
	}
	if err := n.Decode(&m); err != nil {
		return err
	}
	d.Type, d.Value, d.Expr = m.Type, m.Value, m.Expr
	return nil
}

// setFile stamps filename on every position decoded from YAML nodes.
func (d *assemblyDoc) setFile(filename string) {
	d.Pos.File = filename
	for _, mod := range d.Modules {
		mod.Pos.File = filename
		for _, t := range mod.Types {
			t.setFile(filename)
		}
	}
}

func (d *typeDoc) setFile(filename string) {
	d.Pos.File = filename
	for _, f := range d.Fields {
		f.Pos.File = filename
	}
	for _, m := range d.Methods {
		m.Pos.File = filename
		for _, p := range m.Parameters {
			p.Pos.File = filename
		}
		for _, a := range m.Attributes {
			a.Pos.File = filename
			for _, arg := range a.Arguments {
				arg.Pos.File = filename
			}
		}
	}
	for _, nested := range d.Nested {
		nested.setFile(filename)
	}
}
