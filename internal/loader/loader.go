package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/roach88/bct/internal/meta"
)

var log = commonlog.GetLogger("bct.loader")

// Result is a loaded assembly together with the raw description bytes,
// which identify the input for caching.
type Result struct {
	Assembly *meta.Assembly
	Source   []byte
	Format   string
}

// Load reads the assembly description at path. The format follows the
// extension: ".cue" or ".yaml"/".yml".
func Load(path string) (*Result, error) {
	return LoadAs(path, path)
}

// LoadAs is Load with positions labeled by name instead of path, which
// keeps source locations stable when the same file is reached through
// different relative paths.
func LoadAs(path, name string) (*Result, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("assembly description not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	var asm *meta.Assembly
	if format == "cue" {
		asm, err = LoadCUE(name, src)
	} else {
		asm, err = LoadYAML(name, src)
	}
	if err != nil {
		return nil, err
	}
	log.Infof("loaded assembly %s from %s", asm.Name, path)
	return &Result{Assembly: asm, Source: src, Format: format}, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return "cue", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", &LoadError{
			Code:    ErrCodeUnknownFormat,
			Message: fmt.Sprintf("unsupported file extension %q (want .cue, .yaml or .yml)", filepath.Ext(path)),
		}
	}
}

// LoadCUE builds an assembly from CUE source. filename labels positions.
func LoadCUE(filename string, src []byte) (*meta.Assembly, error) {
	doc, err := decodeCUE(filename, src)
	if err != nil {
		return nil, err
	}
	return build(doc)
}

// LoadYAML builds an assembly from YAML source. filename labels positions.
func LoadYAML(filename string, src []byte) (*meta.Assembly, error) {
	doc, err := decodeYAML(filename, src)
	if err != nil {
		return nil, err
	}
	return build(doc)
}
