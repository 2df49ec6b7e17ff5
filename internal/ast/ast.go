// Package ast defines the syntax tree produced by internal/parser and
// consumed by internal/interp: an expression sum (Literal, Variable, Assign,
// Unary, Binary, Logical, Grouping, Call) and a statement sum (Expression,
// Print, Var, Block, If, While, For, Function, Return), following spec §4.2's
// grammar one node type per production.
package ast

import "github.com/cwbudde/go-lox/internal/token"

// Node is implemented by every expression and statement.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that is executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) == 0 {
		return ""
	}
	return p.Statements[0].TokenLiteral()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

// ---- Expressions ----

// Literal is a constant value: Number(float64), String(string), Boolean(bool),
// or Null(nil).
type Literal struct {
	Token token.Token
	Value any
}

func (e *Literal) expressionNode()      {}
func (e *Literal) TokenLiteral() string { return e.Token.Lexeme }
func (e *Literal) Pos() token.Position  { return e.Token.Pos }
func (e *Literal) String() string       { return stringifyLiteral(e.Value) }

// Variable is a reference to a named binding.
type Variable struct {
	Token token.Token
	Name  string
}

func (e *Variable) expressionNode()      {}
func (e *Variable) TokenLiteral() string { return e.Token.Lexeme }
func (e *Variable) Pos() token.Position  { return e.Token.Pos }
func (e *Variable) String() string       { return e.Name }

// Assign assigns Value to an existing binding named Name.
type Assign struct {
	Token token.Token
	Name  string
	Value Expression
}

func (e *Assign) expressionNode()      {}
func (e *Assign) TokenLiteral() string { return e.Token.Lexeme }
func (e *Assign) Pos() token.Position  { return e.Token.Pos }
func (e *Assign) String() string       { return e.Name + " = " + e.Value.String() }

// Unary is a prefix operator application: `!`, `+`, or `-`.
type Unary struct {
	Token token.Token
	Op    string
	Right Expression
}

func (e *Unary) expressionNode()      {}
func (e *Unary) TokenLiteral() string { return e.Token.Lexeme }
func (e *Unary) Pos() token.Position  { return e.Token.Pos }
func (e *Unary) String() string       { return "(" + e.Op + e.Right.String() + ")" }

// Binary is a left-associative infix operator application.
type Binary struct {
	Token token.Token
	Left  Expression
	Op    string
	Right Expression
}

func (e *Binary) expressionNode()      {}
func (e *Binary) TokenLiteral() string { return e.Token.Lexeme }
func (e *Binary) Pos() token.Position  { return e.Token.Pos }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// Logical is `&&`/`||`, kept distinct from Binary so the evaluator can
// short-circuit instead of evaluating both sides.
type Logical struct {
	Token token.Token
	Left  Expression
	Op    string
	Right Expression
}

func (e *Logical) expressionNode()      {}
func (e *Logical) TokenLiteral() string { return e.Token.Lexeme }
func (e *Logical) Pos() token.Position  { return e.Token.Pos }
func (e *Logical) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// Grouping is a parenthesized sub-expression.
type Grouping struct {
	Token      token.Token
	Expression Expression
}

func (e *Grouping) expressionNode()      {}
func (e *Grouping) TokenLiteral() string { return e.Token.Lexeme }
func (e *Grouping) Pos() token.Position  { return e.Token.Pos }
func (e *Grouping) String() string       { return "(group " + e.Expression.String() + ")" }

// Call applies Callee to Args. Paren is the closing `)`, retained for its
// position so a runtime arity error can be reported accurately.
type Call struct {
	Callee Expression
	Paren  token.Token
	Args   []Expression
}

func (e *Call) expressionNode()      {}
func (e *Call) TokenLiteral() string { return e.Paren.Lexeme }
func (e *Call) Pos() token.Position  { return e.Callee.Pos() }
func (e *Call) String() string {
	out := e.Callee.String() + "("
	for i, a := range e.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}

// ---- Statements ----

// ExpressionStmt evaluates Expr for effect, discarding the result.
type ExpressionStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStmt) statementNode()     {}
func (s *ExpressionStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExpressionStmt) Pos() token.Position  { return s.Token.Pos }
func (s *ExpressionStmt) String() string       { return s.Expr.String() + ";" }

// PrintStmt evaluates Expr and writes its display form to stdout.
type PrintStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *PrintStmt) statementNode()     {}
func (s *PrintStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *PrintStmt) Pos() token.Position  { return s.Token.Pos }
func (s *PrintStmt) String() string       { return "print " + s.Expr.String() + ";" }

// VarStmt declares Name in the current scope, bound to Initializer's value
// (or Null if Initializer is nil).
type VarStmt struct {
	Token       token.Token
	Name        string
	Initializer Expression
}

func (s *VarStmt) statementNode()     {}
func (s *VarStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *VarStmt) Pos() token.Position  { return s.Token.Pos }
func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return "var " + s.Name + ";"
	}
	return "var " + s.Name + " = " + s.Initializer.String() + ";"
}

// BlockStmt introduces a new lexical scope enclosing Statements.
type BlockStmt struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStmt) statementNode()     {}
func (s *BlockStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *BlockStmt) Pos() token.Position  { return s.Token.Pos }
func (s *BlockStmt) String() string {
	out := "{ "
	for _, st := range s.Statements {
		out += st.String() + " "
	}
	return out + "}"
}

// IfStmt executes Then when Condition is truthy, else Else (which may be nil).
type IfStmt struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStmt) statementNode()     {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *IfStmt) Pos() token.Position  { return s.Token.Pos }
func (s *IfStmt) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt re-executes Body while Condition remains truthy.
type WhileStmt struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) statementNode()     {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhileStmt) Pos() token.Position  { return s.Token.Pos }
func (s *WhileStmt) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// ForStmt holds the three for-clauses as separate fields: Initializer (run
// once), a Condition checked before every iteration (nil means "absent"),
// and Increment (nil when absent), which the evaluator runs after each
// execution of Body.
type ForStmt struct {
	Token       token.Token
	Initializer Statement
	Condition   Expression
	Increment   Expression
	Body        Statement
}

func (s *ForStmt) statementNode()     {}
func (s *ForStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ForStmt) Pos() token.Position  { return s.Token.Pos }
func (s *ForStmt) String() string {
	return "for (...) " + s.Body.String()
}

// FunctionStmt declares a named, closure-capturing function.
type FunctionStmt struct {
	Token  token.Token
	Name   string
	Params []string
	Body   []Statement
}

func (s *FunctionStmt) statementNode()     {}
func (s *FunctionStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *FunctionStmt) Pos() token.Position  { return s.Token.Pos }
func (s *FunctionStmt) String() string {
	out := "fn " + s.Name + "("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	out += ") { "
	for _, st := range s.Body {
		out += st.String() + " "
	}
	return out + "}"
}

// ReturnStmt exits the enclosing function call with Value. A bare `return;`
// is desugared by the parser into Value = Literal(nil).
type ReturnStmt struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStmt) statementNode()     {}
func (s *ReturnStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ReturnStmt) Pos() token.Position  { return s.Token.Pos }
func (s *ReturnStmt) String() string       { return "return " + s.Value.String() + ";" }
