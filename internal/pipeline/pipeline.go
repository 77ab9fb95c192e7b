// Package pipeline runs the full translation of one assembly description:
// load, translate with the reference statement translator, print and hash.
// The CLI and the conformance harness share it.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/loader"
	"github.com/roach88/bct/internal/meta"
	"github.com/roach88/bct/internal/stmt"
	"github.com/roach88/bct/internal/translate"
)

var log = commonlog.GetLogger("bct.pipeline")

// Error codes for failures that carry no code of their own.
const (
	CodeBodyError         = "BODY_ERROR"
	CodeTranslationFailed = "TRANSLATION_FAILED"
)

// Output is a translated assembly description.
type Output struct {
	Input     string
	Format    string
	Source    []byte
	InputHash string

	Program *bpl.Program
	Text    string
	Hash    string
	Stats   translate.Stats
}

// Procedures returns the number of procedure declarations.
func (o *Output) Procedures() int {
	return len(o.Program.Procedures())
}

// Implementations returns the number of implementations.
func (o *Output) Implementations() int {
	return len(o.Program.Implementations())
}

// TranslateFile loads and translates the assembly description at path.
func TranslateFile(path string) (*Output, error) {
	return TranslateFileAs(path, path)
}

// TranslateFileAs is TranslateFile with source locations labeled by name.
func TranslateFileAs(path, name string) (*Output, error) {
	res, err := loader.LoadAs(path, name)
	if err != nil {
		return nil, err
	}
	return TranslateLoaded(path, name, res)
}

// TranslateLoaded translates an already loaded description whose positions
// are labeled with name.
func TranslateLoaded(path, name string, res *loader.Result) (*Output, error) {
	result, err := Translate(res.Assembly)
	if err != nil {
		return nil, err
	}
	hash, err := bpl.ProgramHash(result.Program)
	if err != nil {
		return nil, err
	}
	out := &Output{
		Input:     path,
		Format:    res.Format,
		Source:    res.Source,
		InputHash: InputKey(name, res.Source),
		Program:   result.Program,
		Text:      bpl.Print(result.Program),
		Hash:      hash,
		Stats:     result.Stats,
	}
	log.Debugf("%s: program %s", path, out.Hash)
	return out, nil
}

// InputKey identifies one translation input: the description bytes and the
// name source locations are labeled with. Equal keys yield equal programs
// under the same translator version.
func InputKey(name string, src []byte) string {
	data := make([]byte, 0, len(name)+1+len(src))
	data = append(data, name...)
	data = append(data, 0x00)
	data = append(data, src...)
	return bpl.InputHash(data)
}

// Translate runs the translator over asm with statement bodies lowered by
// the stmt package and method locations used as debug information.
func Translate(asm *meta.Assembly) (*translate.Result, error) {
	tr := translate.NewTranslator(
		stmt.NewFactory(meta.NewIndex(asm)),
		translate.WithDebugInfo(translate.MethodLocations{}),
	)
	return tr.Run(asm)
}

// ErrorCode classifies err: a loader code (E001..E008), an unsupported
// feature code, BODY_ERROR for method bodies that do not parse or lower,
// or TRANSLATION_FAILED.
func ErrorCode(err error) string {
	var le *loader.LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	if code, ok := translate.CodeOf(err); ok {
		return string(code)
	}
	var se *stmt.Error
	if errors.As(err, &se) {
		return CodeBodyError
	}
	return CodeTranslationFailed
}

// IsLoadError reports whether err came from reading the description rather
// than from translating it.
func IsLoadError(err error) bool {
	var le *loader.LoadError
	return errors.As(err, &le)
}

// Describe renders err for diagnostics, without the code prefix loader and
// unsupported-feature errors carry in Error().
func Describe(err error) string {
	var le *loader.LoadError
	if errors.As(err, &le) {
		if le.Pos.IsValid() {
			return fmt.Sprintf("%s: %s", le.Pos, le.Message)
		}
		return le.Message
	}
	var ue *translate.UnsupportedFeatureError
	if errors.As(err, &ue) && err == error(ue) {
		return strings.TrimPrefix(err.Error(), string(ue.Code)+": ")
	}
	return err.Error()
}
