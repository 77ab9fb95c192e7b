package loader

import "gopkg.in/yaml.v3"

// The document types are the format-neutral shape of an assembly
// description. The CUE and YAML front ends both decode into them; build
// turns them into meta definitions.

type assemblyDoc struct {
	Name    string       `yaml:"assembly"`
	Modules []*moduleDoc `yaml:"modules"`
	Pos     Position     `yaml:"-"`
}

type moduleDoc struct {
	Name  string     `yaml:"name"`
	Types []*typeDoc `yaml:"types"`
	Pos   Position   `yaml:"-"`
}

type typeDoc struct {
	Name              string       `yaml:"name"`
	Namespace         string       `yaml:"namespace"`
	Kind              string       `yaml:"kind"`
	GenericParameters []string     `yaml:"generic_parameters"`
	Fields            []*fieldDoc  `yaml:"fields"`
	Methods           []*methodDoc `yaml:"methods"`
	Nested            []*typeDoc   `yaml:"nested"`
	Pos               Position     `yaml:"-"`
}

type fieldDoc struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Static bool     `yaml:"static"`
	Pos    Position `yaml:"-"`
}

type methodDoc struct {
	Name        string          `yaml:"name"`
	Returns     string          `yaml:"returns"`
	Static      bool            `yaml:"static"`
	Abstract    bool            `yaml:"abstract"`
	Constructor bool            `yaml:"constructor"`
	Parameters  []*paramDoc     `yaml:"parameters"`
	Attributes  []*attributeDoc `yaml:"attributes"`
	Body        *string         `yaml:"body"`
	Pos         Position        `yaml:"-"`
}

type paramDoc struct {
	Name string   `yaml:"name"`
	Type string   `yaml:"type"`
	Mode string   `yaml:"mode"`
	Pos  Position `yaml:"-"`
}

type attributeDoc struct {
	Type      string         `yaml:"type"`
	Arguments []*argumentDoc `yaml:"arguments"`
	Pos       Position       `yaml:"-"`
}

// argumentDoc is one attribute argument: a plain literal (Value set, Type
// empty), a typed literal ({type: "double", value: 1.5}) or a non-literal
// ({expr: "typeof(T)"}).
type argumentDoc struct {
	Value any
	Type  string
	Expr  string
	Pos   Position
}

func yamlPosition(file string, n *yaml.Node) Position {
	return Position{File: file, Line: n.Line, Column: n.Column}
}
