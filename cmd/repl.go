package cmd

import (
	"ark/common"
	"ark/report"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	promptMain = "ark> "
	promptCont = "...> "
	replPath   = "<repl>"
)

const replHelp = `Enter ark statements to see the three-address code they lower to.
Commands:
  :help    show this message
  :llvm    print the LLVM IR of the session
  :ast     print the AST of the session
  :reset   discard the session
  :quit    exit the REPL
`

// replSession is the source accepted by the REPL so far.  Every entry is
// compiled along with the whole session so it can refer to earlier entries.
type replSession struct {
	// src is the accepted source text.
	src string

	// tacLines is the number of lines of three-address code the session
	// lowered to when it was last extended.
	tacLines int
}

// submit compiles the session extended with entry.  If the entry compiles
// without errors, it is added to the session and the new lines of
// three-address code are returned.  Otherwise, the session is unchanged and
// the compiler holding the diagnostics is returned.
func (s *replSession) submit(entry string) ([]string, *Compiler, bool) {
	candidate := s.src + entry + "\n"

	rep := report.NewReporter(report.LogLevelError)
	c := NewCompiler(rep, replPath, replPath, []byte(candidate))
	if !c.Analyze() {
		return nil, c, false
	}

	tac := strings.TrimSuffix(c.Lower(), "\n")

	var lines []string
	if tac != "" {
		lines = strings.Split(tac, "\n")
	}

	var added []string
	if len(lines) > s.tacLines {
		added = lines[s.tacLines:]
	}

	s.src = candidate
	s.tacLines = len(lines)
	return added, c, true
}

// compile compiles the session as it stands.
func (s *replSession) compile() *Compiler {
	c := NewCompiler(report.NewReporter(report.LogLevelError), replPath, replPath, []byte(s.src))
	c.Analyze()
	return c
}

// -----------------------------------------------------------------------------

// runREPL runs an interactive session until the input ends or the user quits.
func runREPL() error {
	fmt.Printf("ark v%s: type :help for help\n", common.ArkVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, common.HistoryFileName)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := &replSession{}

	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := handleREPLCommand(session, trimmed); quit {
				break
			}

			continue
		}

		added, c, ok := session.submit(entry)
		if !ok {
			c.rep.Display(c.ctx)
			continue
		}

		for _, line := range added {
			fmt.Println(line)
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}

	return nil
}

// handleREPLCommand runs a REPL command.  It returns whether the REPL should
// exit.
func handleREPLCommand(session *replSession, command string) bool {
	switch strings.Fields(command)[0] {
	case ":help":
		fmt.Print(replHelp)
	case ":quit", ":exit":
		return true
	case ":reset":
		*session = replSession{}
		fmt.Println("session reset")
	case ":llvm":
		c := session.compile()
		if output, ok := c.GenerateLLVM(); ok {
			fmt.Print(output)
		} else {
			c.rep.Display(c.ctx)
		}
	case ":ast":
		fmt.Print(session.compile().DumpAST())
	default:
		fmt.Println("unknown command: type :help for help")
	}

	return false
}

// readEntry reads one entry: lines are accumulated while the input is
// incomplete.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		} else if err != nil {
			// Ctrl+C aborts the current entry
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// needsMoreInput returns whether src ends inside a block, a parenthesized
// expression or a block comment.  Brackets inside literals and comments are
// ignored.
func needsMoreInput(src string) bool {
	depth := 0

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '{', '(':
			depth++
		case '}', ')':
			depth--
		case '"', '\'':
			for i++; i < len(src) && src[i] != c && src[i] != '\n'; i++ {
				if src[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
			} else if i+1 < len(src) && src[i+1] == '*' {
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return true
				}

				i += end + 3
			}
		}
	}

	return depth > 0
}
