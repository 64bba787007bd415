package cmd

import (
	"ark/ast"
	"fmt"

	"github.com/kr/pretty"
)

// dumpAST formats an AST as Go syntax with its field names and nested nodes
// expanded.
func dumpAST(body *ast.Body) string {
	return fmt.Sprintf("%# v\n", pretty.Formatter(body))
}
