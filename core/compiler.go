// Package core implements the tinyL compiler: a one-pass recursive-descent
// parser that emits virtual-register code as it recognizes each construct.
//
// Grammar (every token is a single character):
//
//	<program>   ::= <stmtlist> !
//	<stmtlist>  ::= <stmt> <morestmts>
//	<morestmts> ::= ; <stmtlist> | ε
//	<stmt>      ::= <assign> | <read> | <print>
//	<assign>    ::= <variable> = <expr>
//	<read>      ::= ? <variable>
//	<print>     ::= % <variable>
//	<expr>      ::= + <expr> <expr> | - <expr> <expr> | * <expr> <expr>
//	              | & <expr> <expr> | | <expr> <expr>
//	              | <variable> | <digit>
//	<variable>  ::= a | b | c | d | e | f
//	<digit>     ::= 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 | 9
//
// No syntax tree is built. Each expression production returns the register
// that holds its value, and registers are allocated in the same order the
// instructions that define them are emitted.
package core

import (
	"log/slog"

	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

var binaryOps = map[byte]instr.Opcode{
	'+': instr.ADD,
	'-': instr.SUB,
	'*': instr.MUL,
	'&': instr.AND,
	'|': instr.OR,
}

// Compiler holds the state of one compilation.
type Compiler struct {
	cursor  *Cursor
	regs    *RegisterAllocator
	emitter Emitter
	emitted int
}

// NewCompiler creates a compiler for src, which must already be stripped of
// whitespace. Instructions are sent to emitter.
func NewCompiler(src string, emitter Emitter) *Compiler {
	return &Compiler{
		cursor:  NewCursor(src),
		regs:    NewRegisterAllocator(),
		emitter: emitter,
	}
}

// Compile parses a whole program. It stops at the first error; instructions
// emitted before the error stay emitted.
func (c *Compiler) Compile() error {
	return c.program()
}

// Registers returns the number of virtual registers allocated so far.
func (c *Compiler) Registers() int {
	return c.regs.Count()
}

// Emitted returns the number of instructions emitted so far.
func (c *Compiler) Emitted() int {
	return c.emitted
}

// Compile compiles src and sends the code to emitter.
func Compile(src string, emitter Emitter) error {
	return NewCompiler(src, emitter).Compile()
}

// CompileProgram compiles src into an in-memory program.
func CompileProgram(src string) (program.Program, error) {
	var prog program.Program
	err := Compile(src, &prog)

	return prog, err
}

func (c *Compiler) gen(inst instr.Instruction) error {
	Trace("Emit", "Inst", inst.String())

	if err := c.emitter.Emit(inst); err != nil {
		return err
	}

	c.emitted++

	return nil
}

// token returns the lookahead of a production that cannot be empty.
func (c *Compiler) token() (byte, error) {
	if c.cursor.AtEnd() {
		return EndMarker, endOfInputAt(c.cursor.Pos())
	}

	return c.cursor.Peek(), nil
}

func (c *Compiler) syntaxError(msg string) error {
	return &SyntaxError{Pos: c.cursor.Pos(), Token: c.cursor.Peek(), Msg: msg}
}

func (c *Compiler) digit() (int, error) {
	tok, err := c.token()
	if err != nil {
		return 0, err
	}

	if !isDigit(tok) {
		return 0, c.syntaxError("expected digit")
	}

	reg := c.regs.Next()
	if err := c.gen(instr.LoadI(reg, toDigit(tok))); err != nil {
		return 0, err
	}

	return reg, c.cursor.Advance()
}

func (c *Compiler) variable() (int, error) {
	tok, err := c.token()
	if err != nil {
		return 0, err
	}

	if !instr.IsVariable(tok) {
		return 0, c.syntaxError("expected variable")
	}

	reg := c.regs.Next()
	if err := c.gen(instr.Load(reg, tok)); err != nil {
		return 0, err
	}

	return reg, c.cursor.Advance()
}

func (c *Compiler) expr() (int, error) {
	tok, err := c.token()
	if err != nil {
		return 0, err
	}

	if op, ok := binaryOps[tok]; ok {
		return c.binaryExpr(op)
	}

	switch {
	case instr.IsVariable(tok):
		return c.variable()
	case isDigit(tok):
		return c.digit()
	default:
		return 0, c.syntaxError("unknown symbol")
	}
}

// binaryExpr parses both operands of a prefix operator. The left operand's
// code always precedes the right operand's.
func (c *Compiler) binaryExpr(op instr.Opcode) (int, error) {
	if err := c.cursor.Advance(); err != nil {
		return 0, err
	}

	left, err := c.expr()
	if err != nil {
		return 0, err
	}

	right, err := c.expr()
	if err != nil {
		return 0, err
	}

	reg := c.regs.Next()

	return reg, c.gen(instr.Binary(op, reg, left, right))
}

func (c *Compiler) assign() error {
	tok, err := c.token()
	if err != nil {
		return err
	}

	if !instr.IsVariable(tok) {
		return c.syntaxError("assign error")
	}

	if err := c.cursor.Advance(); err != nil {
		return err
	}

	if err := c.expect('=', "assign error, expected '='"); err != nil {
		return err
	}

	result, err := c.expr()
	if err != nil {
		return err
	}

	return c.gen(instr.Store(tok, result))
}

func (c *Compiler) read() error {
	return c.ioStmt('?', "read error", instr.Read)
}

func (c *Compiler) print() error {
	return c.ioStmt('%', "print error", instr.Write)
}

// ioStmt parses "<marker> <variable>" and consumes through the variable.
func (c *Compiler) ioStmt(
	marker byte,
	msg string,
	build func(v byte) instr.Instruction,
) error {
	if err := c.expect(marker, msg); err != nil {
		return err
	}

	tok, err := c.token()
	if err != nil {
		return err
	}

	if !instr.IsVariable(tok) {
		return c.syntaxError(msg)
	}

	if err := c.gen(build(tok)); err != nil {
		return err
	}

	return c.cursor.Advance()
}

func (c *Compiler) stmt() error {
	tok, err := c.token()
	if err != nil {
		return err
	}

	switch {
	case instr.IsVariable(tok):
		return c.assign()
	case tok == '?':
		return c.read()
	case tok == '%':
		return c.print()
	default:
		return c.syntaxError("statement error")
	}
}

func (c *Compiler) moreStmts() error {
	if c.cursor.AtEnd() || c.cursor.Peek() != ';' {
		return nil
	}

	if err := c.cursor.Advance(); err != nil {
		return err
	}

	return c.stmtList()
}

func (c *Compiler) stmtList() error {
	if err := c.stmt(); err != nil {
		return err
	}

	return c.moreStmts()
}

func (c *Compiler) program() error {
	if err := c.stmtList(); err != nil {
		return err
	}

	if c.cursor.AtEnd() || c.cursor.Peek() != '!' {
		return c.syntaxError("program error")
	}

	if err := c.cursor.Advance(); err != nil {
		return err
	}

	if n := c.cursor.Remaining(); n > 0 {
		slog.Warn("Ignoring input after program terminator",
			"Pos", c.cursor.Pos(), "Count", n)
	}

	return nil
}

// expect consumes tok or fails with a syntax error.
func (c *Compiler) expect(tok byte, msg string) error {
	cur, err := c.token()
	if err != nil {
		return err
	}

	if cur != tok {
		return c.syntaxError(msg)
	}

	return c.cursor.Advance()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func toDigit(c byte) int {
	if isDigit(c) {
		return int(c - '0')
	}

	slog.Warn("Non-digit passed to toDigit, returning zero", "Symbol", string(c))

	return 0
}
