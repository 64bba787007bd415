package cmd

import (
	"ark/depm"
	"ark/generate"
	"ark/lower"
	"ark/report"
	"ark/syntax"
	"ark/walk"
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Compiler runs the compilation phases over a single source file.
type Compiler struct {
	// rep collects the diagnostics of every phase.
	rep *report.Reporter

	// ctx is the source file being compiled.
	ctx *report.CompilationContext

	// src is the source text of the file.
	src []byte

	// file is the analyzed file.  It is nil until Analyze has run.
	file *depm.ArkFile
}

// NewCompiler creates a new compiler over a source text.
func NewCompiler(rep *report.Reporter, absPath, reprPath string, src []byte) *Compiler {
	return &Compiler{
		rep: rep,
		ctx: report.NewCompilationContext(absPath, reprPath, src),
		src: src,
	}
}

// LoadCompiler creates a new compiler over the source file at path.
func LoadCompiler(rep *report.Reporter, path string) (*Compiler, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error calculating absolute path: %w", err)
	}

	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}

	reprPath := path
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, absPath); err == nil {
			reprPath = rel
		}
	}

	return NewCompiler(rep, absPath, reprPath, src), nil
}

// Analyze runs the parsing and analysis phases.  It returns whether the file
// is free of errors.
func (c *Compiler) Analyze() bool {
	phase := c.rep.BeginPhase("Parsing")
	p := syntax.NewParser(c.rep, bufio.NewReader(bytes.NewReader(c.src)))
	body := p.Parse()
	phase.End(!c.rep.AnyErrors())

	c.file = depm.NewArkFile(c.ctx, body)

	phase = c.rep.BeginPhase("Analyzing")
	walk.WalkFile(c.rep, c.file)
	phase.End(!c.rep.AnyErrors())

	return !c.rep.AnyErrors()
}

// Lower runs the lowering phase and returns the three-address code.  The file
// must have been analyzed without errors.
func (c *Compiler) Lower() string {
	phase := c.rep.BeginPhase("Lowering")
	tac := lower.NewLowerer(c.file).Lower()
	phase.End(true)

	return tac
}

// GenerateLLVM runs the LLVM generation phase and returns the textual LLVM
// module.  Constructs the backend cannot express are reported as semantic
// errors.
func (c *Compiler) GenerateLLVM() (string, bool) {
	phase := c.rep.BeginPhase("Generating")
	mod, err := generate.Generate(c.file)
	if err != nil {
		phase.End(false)
		c.rep.Report(report.DiagSemantic, err.Span, "%s", err.Message)
		return "", false
	}

	phase.End(true)
	return mod.String(), true
}

// DumpAST returns the pretty-printed AST of the file.
func (c *Compiler) DumpAST() string {
	return dumpAST(c.file.Body)
}

// Finish displays the diagnostics of the compilation and the closing summary.
func (c *Compiler) Finish() {
	c.rep.Display(c.ctx)
	c.rep.DisplayCompilationFinished()
}
