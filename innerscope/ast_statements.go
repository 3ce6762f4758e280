package innerscope

// FunctionStmt declares a named function. Parent is the statically enclosing
// declaration for nested defs and nil at the top level.
type FunctionStmt struct {
	Name     string
	Params   []Param
	Body     []Statement
	Parent   *FunctionStmt
	position Position
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.position }

// ReturnStmt leaves the enclosing function. Value is nil for a bare return.
type ReturnStmt struct {
	Value    Expression
	position Position
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.position }

type RaiseStmt struct {
	Value    Expression
	position Position
}

func (s *RaiseStmt) stmtNode()     {}
func (s *RaiseStmt) Pos() Position { return s.position }

type AssignStmt struct {
	Target   Expression
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

type ExprStmt struct {
	Expr     Expression
	position Position
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition  Expression
	Consequent []Statement
	ElseIf     []*IfStmt
	Alternate  []Statement
	position   Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

type ForStmt struct {
	Iterator string
	Iterable Expression
	Body     []Statement
	position Position
}

func (s *ForStmt) stmtNode()     {}
func (s *ForStmt) Pos() Position { return s.position }

type WhileStmt struct {
	Condition Expression
	Body      []Statement
	position  Position
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Pos() Position { return s.position }

type BreakStmt struct {
	position Position
}

func (s *BreakStmt) stmtNode()     {}
func (s *BreakStmt) Pos() Position { return s.position }

type NextStmt struct {
	position Position
}

func (s *NextStmt) stmtNode()     {}
func (s *NextStmt) Pos() Position { return s.position }

// exportStmt replaces a function-level return in a redirected body. It ends
// the frame with a frameExport holding the bindings and the return value.
// Fallthrough marks the export appended after the last statement, which
// reports the last evaluated value instead of evaluating Value.
type exportStmt struct {
	Value       Expression
	Fallthrough bool
	position    Position
}

func (s *exportStmt) stmtNode()     {}
func (s *exportStmt) Pos() Position { return s.position }
