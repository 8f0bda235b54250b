package core

import (
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

var _ = Describe("Compiler", func() {
	var prog program.Program

	BeforeEach(func() {
		prog = program.Program{}
	})

	Context("when parsing a digit", func() {
		It("should load the digit value into a fresh register", func() {
			for d := byte('0'); d <= '9'; d++ {
				prog = program.Program{}
				c := NewCompiler(string(d), &prog)
				c.regs.Next()
				c.regs.Next()

				reg, err := c.digit()

				Expect(err).NotTo(HaveOccurred())
				Expect(reg).To(Equal(3))
				Expect(prog.Insts).To(Equal([]instr.Instruction{
					instr.LoadI(3, int(d-'0')),
				}))
			}
		})

		It("should reject a non-digit", func() {
			c := NewCompiler("a", &prog)

			_, err := c.digit()

			var synErr *SyntaxError
			Expect(errors.As(err, &synErr)).To(BeTrue())
			Expect(synErr.Msg).To(Equal("expected digit"))
			Expect(prog.Insts).To(BeEmpty())
			Expect(c.Registers()).To(Equal(0))
		})
	})

	Context("when parsing a variable", func() {
		It("should load the variable by letter", func() {
			for v := byte('a'); v <= 'f'; v++ {
				prog = program.Program{}
				c := NewCompiler(string(v), &prog)

				reg, err := c.variable()

				Expect(err).NotTo(HaveOccurred())
				Expect(reg).To(Equal(1))
				Expect(prog.Insts).To(Equal([]instr.Instruction{instr.Load(1, v)}))
			}
		})

		It("should reject letters outside a-f", func() {
			c := NewCompiler("g", &prog)

			_, err := c.variable()

			var synErr *SyntaxError
			Expect(errors.As(err, &synErr)).To(BeTrue())
			Expect(synErr.Msg).To(Equal("expected variable"))
			Expect(synErr.Token).To(Equal(byte('g')))
		})
	})

	Context("when parsing a binary operator", func() {
		var (
			mockCtrl    *gomock.Controller
			mockEmitter *MockEmitter
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			mockEmitter = NewMockEmitter(mockCtrl)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		DescribeTable("left operand, right operand, then the operator",
			func(src string, op instr.Opcode) {
				gomock.InOrder(
					mockEmitter.EXPECT().Emit(instr.LoadI(1, 7)),
					mockEmitter.EXPECT().Emit(instr.Load(2, 'c')),
					mockEmitter.EXPECT().Emit(instr.Binary(op, 3, 1, 2)),
				)

				c := NewCompiler(src, mockEmitter)
				reg, err := c.expr()

				Expect(err).NotTo(HaveOccurred())
				Expect(reg).To(Equal(3))
				Expect(c.Registers()).To(Equal(3))
				Expect(c.Emitted()).To(Equal(3))
			},
			Entry("add", "+7c", instr.ADD),
			Entry("sub", "-7c", instr.SUB),
			Entry("mul", "*7c", instr.MUL),
			Entry("and", "&7c", instr.AND),
			Entry("or", "|7c", instr.OR),
		)

		It("should stop at the first emit failure", func() {
			mockEmitter.EXPECT().
				Emit(instr.LoadI(1, 1)).
				Return(errors.New("disk full"))

			err := Compile("a=+12;%a!", mockEmitter)

			Expect(err).To(MatchError("disk full"))
		})
	})

	It("should thread registers through nested expressions", func() {
		Expect(Compile("a=+2+25;%a!", &prog)).To(Succeed())

		Expect(prog.Insts).To(Equal([]instr.Instruction{
			instr.LoadI(1, 2),
			instr.LoadI(2, 2),
			instr.LoadI(3, 5),
			instr.Binary(instr.ADD, 4, 2, 3),
			instr.Binary(instr.ADD, 5, 1, 4),
			instr.Store('a', 5),
			instr.Write('a'),
		}))
	})

	It("should not allocate registers for read and print", func() {
		c := NewCompiler("?a;%a!", &prog)

		Expect(c.Compile()).To(Succeed())
		Expect(prog.Insts).To(Equal([]instr.Instruction{
			instr.Read('a'),
			instr.Write('a'),
		}))
		Expect(c.Registers()).To(Equal(0))
	})

	It("should consume a read statement exactly once", func() {
		Expect(Compile("?a;?b;%a!", &prog)).To(Succeed())

		Expect(prog.Insts).To(Equal([]instr.Instruction{
			instr.Read('a'),
			instr.Read('b'),
			instr.Write('a'),
		}))
	})

	It("should number registers 1, 2, 3, ... in emission order", func() {
		c := NewCompiler("a=*+12-34;b=&a|5b;%b!", &prog)
		Expect(c.Compile()).To(Succeed())

		defined := map[int]bool{}
		next := 1
		for _, inst := range prog.Insts {
			for _, src := range inst.Consumes() {
				Expect(defined).To(HaveKey(src))
			}

			if dst := inst.Produces(); dst != 0 {
				Expect(dst).To(Equal(next))
				defined[dst] = true
				next++
			}
		}

		Expect(c.Registers()).To(Equal(next - 1))
		Expect(c.Registers()).To(Equal(12))
	})

	It("should ignore input after the terminator", func() {
		Expect(Compile("%a!xyz", &prog)).To(Succeed())
		Expect(prog.Insts).To(Equal([]instr.Instruction{instr.Write('a')}))
	})

	It("should keep instructions emitted before an error", func() {
		err := Compile("a=1;%a;b=", &prog)

		Expect(errors.Is(err, ErrEndOfInput)).To(BeTrue())
		Expect(prog.Insts).To(Equal([]instr.Instruction{
			instr.LoadI(1, 1),
			instr.Store('a', 1),
			instr.Write('a'),
		}))
	})

	DescribeTable("syntax errors",
		func(src string, msg string, pos int) {
			err := Compile(src, &prog)

			var synErr *SyntaxError
			Expect(errors.As(err, &synErr)).To(BeTrue(), "got %v", err)
			Expect(synErr.Msg).To(Equal(msg))
			Expect(synErr.Pos).To(Equal(pos))
		},
		Entry("missing terminator", "a=2", "program error", 3),
		Entry("statement not followed by ; or !", "a=1b", "program error", 3),
		Entry("missing =", "a2", "assign error, expected '='", 1),
		Entry("unknown symbol in expression", "a=x!", "unknown symbol", 2),
		Entry("operator missing an operand", "a=+1!", "unknown symbol", 4),
		Entry("read of a digit", "?3!", "read error", 1),
		Entry("print of a digit", "%1!", "print error", 1),
		Entry("empty statement", "!", "statement error", 0),
		Entry("empty statement after ;", "a=1;!", "statement error", 4),
	)

	It("should name the end of input instead of a symbol", func() {
		err := Compile("a=2", &prog)

		Expect(err).To(MatchError("program error at position 3, reached end of input"))

		err = Compile("a=x!", &prog)

		Expect(err).To(MatchError(`unknown symbol at position 2, current symbol is "x"`))
	})

	DescribeTable("premature end of input",
		func(src string) {
			err := Compile(src, &prog)

			Expect(errors.Is(err, ErrEndOfInput)).To(BeTrue(), "got %v", err)
		},
		Entry("empty program", ""),
		Entry("trailing ;", "a=2;"),
		Entry("assignment without =", "a"),
		Entry("assignment without value", "a="),
		Entry("operator without operands", "a=+"),
		Entry("read without variable", "?"),
		Entry("print without variable", "%"),
	)

	It("should warn and return zero for a non-digit", func() {
		Expect(toDigit('x')).To(Equal(0))
		Expect(toDigit('8')).To(Equal(8))
	})

	It("should compile into an in-memory program", func() {
		p, err := CompileProgram("?b;c=*b2;%c!")

		Expect(err).NotTo(HaveOccurred())
		Expect(p.String()).To(Equal(
			"READ b\nLOAD r1 b\nLOADI r2 #2\nMUL r3 r1 r2\nSTORE c r3\nWRITE c\n"))
	})
})
