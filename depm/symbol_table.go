package depm

import (
	"ark/report"
	"ark/types"
	"fmt"
)

// ScopeKind identifies what kind of construct a scope belongs to.
type ScopeKind int

// Enumeration of scope kinds.
const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

// VarAttribute is the symbol table entry for a variable.
type VarAttribute struct {
	// The name the variable was declared with.
	Name string

	// The declared type of the variable.  This is nil until the variable is
	// updated with its declaration.
	Type types.Type

	// The size of the variable in bytes.
	Size int

	// The array dimension of the variable: 0 for scalars.
	Dimension int

	// The line the variable was declared on.
	LineDeclare int

	// The lines on which the variable is referenced.
	LineRefs []int

	// Whether the variable was declared with `const`.
	Constant bool

	// Whether the variable is the alias of an imported module.  Aliases have
	// no type and can only be used as the receiver of a method call.
	Alias bool

	// writes is the number of versions minted for this variable.
	writes int

	// version is the version currently visible to reads.
	version int
}

// Version returns the version visible to reads: the version of the most
// recent write or 0 if the variable has not been written.
func (va *VarAttribute) Version() int {
	return va.version
}

// ConsumeVersion mints a new version of the variable for a write and returns
// it.
func (va *VarAttribute) ConsumeVersion() int {
	va.version = va.writes
	va.writes++
	return va.version
}

// ResetVersion makes an earlier version visible to reads again.  Versions
// minted after it are not reused by later writes.
func (va *VarAttribute) ResetVersion(version int) {
	if version >= va.writes && version != 0 {
		report.ReportICE("reset of `%s` to unminted version %d", va.Name, version)
	}

	va.version = version
}

// FuncAttribute is the symbol table entry for a function.
type FuncAttribute struct {
	// The name of the function.
	Name string

	// The line the function was declared on.
	LineDeclare int

	// The lines on which the function is called.
	LineUsed []int

	// The parameters of the function in order.
	Params []FuncParam

	// The return type of the function.
	ReturnType types.Type

	// Table is the scope of the function's body.  It is owned by this entry
	// rather than by the parent scope's children.
	Table *SymbolTable
}

// FuncParam is a single function parameter.
type FuncParam struct {
	Name string
	Type types.Type
}

// SymbolTable is a single scope in the scope tree.  Scopes own their children
// (and functions own their body scopes); the parent link is only used to walk
// upward during lookups.
type SymbolTable struct {
	// The kind of construct this scope belongs to.
	Kind ScopeKind

	// The name of the function for function scopes.
	Name string

	// The position of the scope in its parent's children for block scopes.
	Index int

	// The variables declared in this scope.
	Vars map[string]*VarAttribute

	// The functions declared in this scope.
	Funcs map[string]*FuncAttribute

	// The block scopes nested directly in this scope in creation order.
	Children []*SymbolTable

	// parent is the enclosing scope.  This is nil for the global scope.
	parent *SymbolTable

	// temps is the number of IR temporaries allocated in this scope.
	temps int
}

// NewSymbolTable creates a new global scope.
func NewSymbolTable() *SymbolTable {
	return newScope(ScopeGlobal, "", 0, nil)
}

func newScope(kind ScopeKind, name string, index int, parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		Kind:   kind,
		Name:   name,
		Index:  index,
		Vars:   make(map[string]*VarAttribute),
		Funcs:  make(map[string]*FuncAttribute),
		parent: parent,
	}
}

// Parent returns the enclosing scope.
func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

func (st *SymbolTable) String() string {
	switch st.Kind {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return fmt.Sprintf("function(%s)", st.Name)
	default:
		return fmt.Sprintf("block(%d)", st.Index)
	}
}

// -----------------------------------------------------------------------------

// InsertVar inserts a new, undeclared variable into this scope.  An existing
// variable of the same name in this scope is replaced.
func (st *SymbolTable) InsertVar(name string) *VarAttribute {
	attr := &VarAttribute{Name: name}
	st.Vars[name] = attr
	return attr
}

// UpdateVar sets the declaration information of a variable in this scope.
// The variable must already have been inserted.
func (st *SymbolTable) UpdateVar(name string, typ types.Type, size, dim, line int) {
	attr, ok := st.Vars[name]
	if !ok {
		report.ReportICE("update of uninserted variable `%s` in %s scope", name, st)
	}

	attr.Type = typ
	attr.Size = size
	attr.Dimension = dim
	attr.LineDeclare = line
}

// DeclareVar inserts and updates a variable in one step.  The size and
// dimension are derived from the type.
func (st *SymbolTable) DeclareVar(name string, typ types.Type, line int) *VarAttribute {
	attr := st.InsertVar(name)

	size, dim := 0, 0
	if typ != nil {
		size = typ.Size()

		for at, ok := typ.(*types.ArrayType); ok; at, ok = at.ElemType.(*types.ArrayType) {
			dim++
		}
	}

	st.UpdateVar(name, typ, size, dim, line)
	return attr
}

// LookupVar looks up a variable by walking from this scope to the global
// scope.  It returns the variable and the scope it was found in or nil if no
// such variable is visible.
func (st *SymbolTable) LookupVar(name string) (*VarAttribute, *SymbolTable) {
	for scope := st; scope != nil; scope = scope.parent {
		if attr, ok := scope.Vars[name]; ok {
			return attr, scope
		}
	}

	return nil, nil
}

// PushLineRef records a reference to a visible variable.
func (st *SymbolTable) PushLineRef(name string, line int) {
	attr, _ := st.LookupVar(name)
	if attr == nil {
		report.ReportICE("reference to unknown variable `%s` in %s scope", name, st)
	}

	attr.LineRefs = append(attr.LineRefs, line)
}

// -----------------------------------------------------------------------------

// InsertFunc inserts a new function into this scope and creates the scope for
// its body.  The function's return type defaults to void.
func (st *SymbolTable) InsertFunc(name string) *FuncAttribute {
	attr := &FuncAttribute{
		Name:       name,
		ReturnType: types.PrimVoid,
		Table:      newScope(ScopeFunction, name, 0, st),
	}

	st.Funcs[name] = attr
	return attr
}

// UpdateFunc sets the return type and declaration line of a function in this
// scope.  The function must already have been inserted.
func (st *SymbolTable) UpdateFunc(name string, returnType types.Type, line int) {
	attr, ok := st.Funcs[name]
	if !ok {
		report.ReportICE("update of uninserted function `%s` in %s scope", name, st)
	}

	attr.ReturnType = returnType
	attr.LineDeclare = line
}

// AddParam appends a parameter to a function in this scope.
func (st *SymbolTable) AddParam(funcName, paramName string, typ types.Type) {
	attr, ok := st.Funcs[funcName]
	if !ok {
		report.ReportICE("parameter added to uninserted function `%s`", funcName)
	}

	attr.Params = append(attr.Params, FuncParam{Name: paramName, Type: typ})
}

// LookupFunc looks up a function by walking from this scope to the global
// scope.
func (st *SymbolTable) LookupFunc(name string) (*FuncAttribute, *SymbolTable) {
	for scope := st; scope != nil; scope = scope.parent {
		if attr, ok := scope.Funcs[name]; ok {
			return attr, scope
		}
	}

	return nil, nil
}

// CurrentFunc returns the function whose body encloses this scope or nil if
// this scope is not inside a function.
func (st *SymbolTable) CurrentFunc() *FuncAttribute {
	for scope := st; scope != nil; scope = scope.parent {
		if scope.Kind == ScopeFunction {
			if scope.parent == nil {
				return nil
			}

			return scope.parent.Funcs[scope.Name]
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// InsertBlockScope creates a new block scope nested in this scope.
func (st *SymbolTable) InsertBlockScope() *SymbolTable {
	child := newScope(ScopeBlock, "", len(st.Children), st)
	st.Children = append(st.Children, child)
	return child
}

// VarVersion returns the version of a variable visible from this scope.
func (st *SymbolTable) VarVersion(name string) int {
	attr, _ := st.LookupVar(name)
	if attr == nil {
		report.ReportICE("version of unknown variable `%s` in %s scope", name, st)
	}

	return attr.Version()
}

// ConsumeVarVersion mints a new version of a variable for a write and returns
// it.
func (st *SymbolTable) ConsumeVarVersion(name string) int {
	attr, _ := st.LookupVar(name)
	if attr == nil {
		report.ReportICE("version of unknown variable `%s` in %s scope", name, st)
	}

	return attr.ConsumeVersion()
}

// NewTemp allocates the next IR temporary number.  Temporaries are counted in
// the nearest enclosing function scope or the global scope.
func (st *SymbolTable) NewTemp() int {
	scope := st
	for scope.Kind == ScopeBlock && scope.parent != nil {
		scope = scope.parent
	}

	n := scope.temps
	scope.temps++
	return n
}
