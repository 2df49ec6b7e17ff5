// Package parser implements the recursive-descent parser described in
// spec §4.2: one function per grammar level, left-associative binary
// operators built via the `expr = Binary(expr, op, right)` loop, and
// error-accumulate-and-continue recovery through synchronize, in the shape
// of the teacher parser's addError/synchronize pair.
package parser

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/token"
)

// Parser consumes a lexer.Lexer's token stream and builds an *ast.Program,
// collecting every error it encounters along the way rather than stopping
// at the first one.
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token

	prevWasSemi bool
	errors      []*ParseError
}

// New primes the one-token lookahead the grammar needs (cur and peek) and
// returns a ready-to-use Parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

// Errors returns every diagnostic accumulated while parsing.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) addError(msg string, pos token.Position) {
	p.errors = append(p.errors, &ParseError{Message: msg, Pos: pos})
}

func (p *Parser) advance() token.Token {
	prev := p.cur
	p.prevWasSemi = prev.Kind == token.Punctuation && prev.Lexeme == token.Semi
	p.cur = p.peek
	p.peek = p.l.Next()
	return prev
}

func (p *Parser) curIsPunct(lexeme string) bool {
	return p.cur.Kind == token.Punctuation && p.cur.Lexeme == lexeme
}

func (p *Parser) curIsOp(lexeme string) bool {
	return p.cur.Kind == token.Operator && p.cur.Lexeme == lexeme
}

func (p *Parser) curIsKeyword(lexeme string) bool {
	return p.cur.Kind == token.Keyword && p.cur.Lexeme == lexeme
}

func (p *Parser) atEOF() bool { return p.cur.Kind == token.EOF }

// matchPunct consumes cur and returns true if it is the given punctuation.
func (p *Parser) matchPunct(lexeme string) bool {
	if p.curIsPunct(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOp(lexeme string) bool {
	if p.curIsOp(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(lexeme string) bool {
	if p.curIsKeyword(lexeme) {
		p.advance()
		return true
	}
	return false
}

// expectPunct consumes cur if it is the given punctuation, else records
// errMsg at cur's position and leaves cur in place for synchronize to skip.
func (p *Parser) expectPunct(lexeme, errMsg string) bool {
	if p.curIsPunct(lexeme) {
		p.advance()
		return true
	}
	p.addError(errMsg, p.cur.Pos)
	return false
}

// synchronize discards tokens until it is positioned at a likely statement
// boundary: just past a `;`, or at a token that starts a new statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEOF() {
		if p.prevWasSemi {
			return
		}
		switch {
		case p.curIsKeyword(token.Class), p.curIsKeyword(token.Var), p.curIsKeyword(token.Fn),
			p.curIsKeyword(token.For), p.curIsKeyword(token.If), p.curIsKeyword(token.While),
			p.curIsKeyword(token.Print), p.curIsKeyword(token.Return):
			return
		}
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a Program, accumulating
// ParseErrors in p.Errors() rather than stopping at the first failure.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEOF() {
		stmt := p.declaration()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) declaration() ast.Statement {
	startErrs := len(p.errors)
	var stmt ast.Statement
	switch {
	case p.curIsKeyword(token.Var):
		stmt = p.varDecl()
	case p.curIsKeyword(token.Fn):
		stmt = p.funDecl()
	default:
		stmt = p.statement()
	}
	if len(p.errors) > startErrs {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) varDecl() ast.Statement {
	tok := p.cur
	p.advance() // `var`

	if p.cur.Kind != token.Identifier {
		p.addError("Expected variable name here", p.cur.Pos)
		return nil
	}
	name := p.cur.Lexeme
	p.advance()

	var init ast.Expression
	if p.matchOp(token.Assign) {
		init = p.expression()
	}
	p.expectPunct(token.Semi, "Expected a `;` after the variable initialization")
	return &ast.VarStmt{Token: tok, Name: name, Initializer: init}
}

func (p *Parser) funDecl() ast.Statement {
	tok := p.cur
	p.advance() // `fn`

	if p.cur.Kind != token.Identifier {
		p.addError("Expected variable name here", p.cur.Pos)
		return nil
	}
	name := p.cur.Lexeme
	p.advance()

	if !p.expectPunct(token.LParen, "Expected a `(` after the function's name") {
		return nil
	}

	var params []string
	if !p.curIsPunct(token.RParen) {
		for {
			if p.cur.Kind != token.Identifier {
				p.addError("Expected variable name here", p.cur.Pos)
				break
			}
			params = append(params, p.cur.Lexeme)
			p.advance()
			if !p.matchPunct(token.Comma) {
				break
			}
		}
	}
	p.expectPunct(token.RParen, "Expected a `)` after the function's argument list")

	if !p.curIsPunct(token.LBrace) {
		p.addError("Expected here a block start - `{`", p.cur.Pos)
		return nil
	}
	body := p.block()
	return &ast.FunctionStmt{Token: tok, Name: name, Params: params, Body: body}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.curIsKeyword(token.Print):
		return p.printStatement()
	case p.curIsKeyword(token.Return):
		return p.returnStatement()
	case p.curIsKeyword(token.If):
		return p.ifStatement()
	case p.curIsKeyword(token.While):
		return p.whileStatement()
	case p.curIsKeyword(token.For):
		return p.forStatement()
	case p.curIsPunct(token.LBrace):
		tok := p.cur
		stmts := p.block()
		return &ast.BlockStmt{Token: tok, Statements: stmts}
	default:
		return p.expressionStatement()
	}
}

// block consumes the leading `{`, zero or more declarations, and the
// trailing `}`, reporting the canonical unclosed-block message if `}` is
// missing.
func (p *Parser) block() []ast.Statement {
	p.advance() // `{`
	var stmts []ast.Statement
	for !p.curIsPunct(token.RBrace) && !p.atEOF() {
		stmt := p.declaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expectPunct(token.RBrace, "Expected here a `}` to close the block")
	return stmts
}

func (p *Parser) ifStatement() ast.Statement {
	tok := p.cur
	p.advance() // `if`
	p.expectPunct(token.LParen, "Expected a `(` after `if`")
	cond := p.expression()
	p.expectPunct(token.RParen, "Expected a `)` after the `if` condition")

	then := p.statement()
	var elseBranch ast.Statement
	if p.matchKeyword(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Token: tok, Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Statement {
	tok := p.cur
	p.advance() // `while`
	p.expectPunct(token.LParen, "Expected a `(` before the `while` condition")
	cond := p.expression()
	p.expectPunct(token.RParen, "Expected a `)` after the `while` condition")
	body := p.statement()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

// forStatement parses the C-style three-clause for loop into an
// ast.ForStmt, keeping the increment clause as its own Increment expression
// rather than merging it into the loop body. A missing condition clause is left
// as a nil Expression: the evaluator treats a nil condition as always-truthy,
// so the loop runs forever until a return or a runtime error ends it (see
// SPEC_FULL.md's Open Question resolution).
func (p *Parser) forStatement() ast.Statement {
	tok := p.cur
	p.advance() // `for`
	p.expectPunct(token.LParen, "Expected a `(` before the `for` condition")

	var initializer ast.Statement
	switch {
	case p.matchPunct(token.Semi):
		initializer = nil
	case p.curIsKeyword(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expression
	if !p.curIsPunct(token.Semi) {
		condition = p.expression()
	}
	p.expectPunct(token.Semi, "Expected a `;` after the `for`'s condition expression")

	var increment ast.Expression
	if !p.curIsPunct(token.RParen) {
		increment = p.expression()
	}
	p.expectPunct(token.RParen, "Expected a `)` after the `for` clause")

	body := p.statement()
	return &ast.ForStmt{Token: tok, Initializer: initializer, Condition: condition, Increment: increment, Body: body}
}

func (p *Parser) printStatement() ast.Statement {
	tok := p.cur
	p.advance() // `print`
	expr := p.expression()
	p.expectPunct(token.Semi, "Expected a `;` after the print value")
	return &ast.PrintStmt{Token: tok, Expr: expr}
}

func (p *Parser) returnStatement() ast.Statement {
	tok := p.cur
	p.advance() // `return`
	var value ast.Expression
	if !p.curIsPunct(token.Semi) {
		value = p.expression()
	} else {
		value = &ast.Literal{Token: tok, Value: nil}
	}
	p.expectPunct(token.Semi, "Expected a `;` after the return value")
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) expressionStatement() ast.Statement {
	tok := p.cur
	expr := p.expression()
	p.expectPunct(token.Semi, "Expected a `;` after the value")
	return &ast.ExpressionStmt{Token: tok, Expr: expr}
}

// ---- expression precedence chain ----

func (p *Parser) expression() ast.Expression { return p.assignment() }

func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if p.curIsOp(token.Assign) {
		eqTok := p.cur
		p.advance()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Token: eqTok, Name: v.Name, Value: value}
		}
		p.addError("invalid assignment target", eqTok.Pos)
		return expr
	}
	return expr
}

func (p *Parser) or() ast.Expression {
	expr := p.and()
	for p.curIsOp(token.OrOr) {
		opTok := p.advance()
		right := p.and()
		expr = &ast.Logical{Token: opTok, Left: expr, Op: opTok.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expression {
	expr := p.equality()
	for p.curIsOp(token.AndAnd) {
		opTok := p.advance()
		right := p.equality()
		expr = &ast.Logical{Token: opTok, Left: expr, Op: opTok.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.curIsOp(token.NotEq) || p.curIsOp(token.Eq) {
		opTok := p.advance()
		right := p.comparison()
		expr = &ast.Binary{Token: opTok, Left: expr, Op: opTok.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.curIsOp(token.Greater) || p.curIsOp(token.GreaterE) || p.curIsOp(token.Less) || p.curIsOp(token.LessE) {
		opTok := p.advance()
		right := p.term()
		expr = &ast.Binary{Token: opTok, Left: expr, Op: opTok.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.curIsOp(token.Minus) || p.curIsOp(token.Plus) {
		opTok := p.advance()
		right := p.factor()
		expr = &ast.Binary{Token: opTok, Left: expr, Op: opTok.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.curIsOp(token.Slash) || p.curIsOp(token.Star) {
		opTok := p.advance()
		right := p.unary()
		expr = &ast.Binary{Token: opTok, Left: expr, Op: opTok.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.curIsOp(token.Not) || p.curIsOp(token.Minus) || p.curIsOp(token.Plus) {
		opTok := p.advance()
		right := p.unary()
		return &ast.Unary{Token: opTok, Op: opTok.Lexeme, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for p.curIsPunct(token.LParen) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	p.advance() // `(`
	var args []ast.Expression
	if !p.curIsPunct(token.RParen) {
		for {
			args = append(args, p.expression())
			if !p.matchPunct(token.Comma) {
				break
			}
		}
	}
	paren := p.cur
	p.expectPunct(token.RParen, "Expected a `)` after the expression")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.cur.Kind == token.Number:
		tok := p.cur
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.cur.Kind == token.String:
		tok := p.cur
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.cur.Kind == token.Boolean:
		tok := p.cur
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.cur.Kind == token.Null:
		tok := p.cur
		p.advance()
		return &ast.Literal{Token: tok, Value: nil}
	case p.cur.Kind == token.Identifier:
		tok := p.cur
		p.advance()
		return &ast.Variable{Token: tok, Name: tok.Lexeme}
	case p.curIsPunct(token.LParen):
		tok := p.cur
		p.advance()
		expr := p.expression()
		p.expectPunct(token.RParen, "Expected a `)` after the expression")
		return &ast.Grouping{Token: tok, Expression: expr}
	default:
		p.addError("Expected a `)` after the expression", p.cur.Pos)
		tok := p.cur
		p.advance()
		return &ast.Literal{Token: tok, Value: nil}
	}
}
