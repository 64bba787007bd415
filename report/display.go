package report

import (
	"ark/common"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// CompilationContext is the source file a set of diagnostics refer to.  It
// keeps the source text so that erroneous code can be displayed without
// reopening the file.
type CompilationContext struct {
	// FilePath is the absolute path to the source file.
	FilePath string

	// ReprPath is the path displayed to the user.
	ReprPath string

	// lines is the source text split into lines.
	lines []string

	// lineStarts is the byte offset of the start of each line.
	lineStarts []int
}

// NewCompilationContext creates a new compilation context over src.
func NewCompilationContext(absPath, reprPath string, src []byte) *CompilationContext {
	text := string(src)
	ctx := &CompilationContext{
		FilePath: absPath,
		ReprPath: reprPath,
		lines:    strings.Split(text, "\n"),
	}

	offset := 0
	for _, line := range ctx.lines {
		ctx.lineStarts = append(ctx.lineStarts, offset)
		offset += len(line) + 1
	}

	return ctx
}

// positionOf converts a byte offset into a position.
func (ctx *CompilationContext) positionOf(offset int) Position {
	n := sort.Search(len(ctx.lineStarts), func(i int) bool {
		return ctx.lineStarts[i] > offset
	})

	if n == 0 {
		return Position{Line: 1, Col: 1, Offset: offset}
	}

	return Position{Line: n, Col: offset - ctx.lineStarts[n-1] + 1, Offset: offset}
}

// -----------------------------------------------------------------------------

// Display prints all the diagnostics collected by the reporter that are
// allowed by its log level.  Warnings are displayed before errors.
func (r *Reporter) Display(ctx *CompilationContext) {
	if r.logLevel >= LogLevelWarn {
		for _, warning := range r.Warnings() {
			displayDiagnostic(ctx, warning)
		}
	}

	if r.logLevel >= LogLevelError {
		for _, diag := range r.Diagnostics() {
			displayDiagnostic(ctx, diag)
		}
	}
}

// displayDiagnostic displays a single diagnostic.
func displayDiagnostic(ctx *CompilationContext, diag *Diagnostic) {
	displayBanner(ctx, diag)
	fmt.Println(diag.Message)

	if diag.Span != nil {
		fmt.Printf("  at %s:%d:%d\n", ctx.ReprPath, diag.Span.Pos.Line, diag.Span.Pos.Col)
		displayCodeSelection(ctx, diag.Span)
	}
}

// displayBanner displays the banner on top of all diagnostic messages.
func displayBanner(ctx *CompilationContext, diag *Diagnostic) {
	fmt.Print("\n-- ")

	kindStr := diag.Kind.String()
	if diag.IsError {
		kindStr += " Error"
		ErrorStyleBG.Print(kindStr)
	} else {
		kindStr += " Warning"
		WarnStyleBG.Print(kindStr)
	}

	fmt.Print(" ")

	fileName := filepath.Base(ctx.ReprPath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(kindStr) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the erroneous code (with line numbers) and
// highlights the selected source text with carets.
func displayCodeSelection(ctx *CompilationContext, span *TextSpan) {
	start := span.Pos
	endOffset := span.End()
	if span.Length > 0 {
		endOffset--
	}
	end := ctx.positionOf(endOffset)

	if start.Line < 1 || start.Line > len(ctx.lines) {
		return
	}

	if end.Line > len(ctx.lines) || end.Line < start.Line {
		end = start
	}

	lines := make([]string, end.Line-start.Line+1)
	for i := range lines {
		lines[i] = strings.ReplaceAll(ctx.lines[start.Line-1+i], "\t", " ")
	}

	// calculate whitespace to trim
	minWhitespace := -1
	for _, line := range lines {
		leading := len(line) - len(strings.TrimLeft(line, " "))
		if minWhitespace == -1 || leading < minWhitespace {
			minWhitespace = leading
		}
	}

	maxLineNumberWidth := len(strconv.Itoa(end.Line)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	fmt.Println()
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, i+start.Line))
		fmt.Print("|  ")
		fmt.Println(line[minWhitespace:])

		fmt.Print(strings.Repeat(" ", maxLineNumberWidth), "|  ")

		first, last := 0, len(line)
		if i == 0 {
			first = start.Col - 1
		}

		if i == len(lines)-1 {
			last = end.Col
		}

		first -= minWhitespace
		last -= minWhitespace
		if first < 0 {
			first = 0
		}

		if last <= first {
			last = first + 1
		}

		fmt.Print(strings.Repeat(" ", first))
		ErrorColorFG.Println(strings.Repeat("^", last-first))
	}

	fmt.Println()
}

// -----------------------------------------------------------------------------

const icePostlude = `This error was not supposed to happen: it is likely a bug in the compiler.`

// displayICE displays an internal compiler error message.
func displayICE(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + msg)
	InfoColorFG.Println(icePostlude)
}

// DisplayCompileHeader displays the compiler information before compilation
// begins.  It only displays at the verbose log level.
func (r *Reporter) DisplayCompileHeader(target string) {
	if r.logLevel < LogLevelVerbose {
		return
	}

	fmt.Print("ark ")
	InfoColorFG.Print("v" + common.ArkVersion)
	fmt.Print(" -- input: ")
	InfoColorFG.Println(target)
}

// DisplayCompilationFinished displays the concluding message for compilation
// along with the error and warning counts.  It only displays at the verbose
// log level.
func (r *Reporter) DisplayCompilationFinished() {
	if r.logLevel < LogLevelVerbose {
		return
	}

	errorCount := r.ErrorCount()
	warningCount := len(r.Warnings())

	fmt.Print("\n")
	if errorCount == 0 {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}

// ErrCompilationFailed is returned by drivers when compilation produced
// diagnostics.
var ErrCompilationFailed = errors.New("compilation failed")
