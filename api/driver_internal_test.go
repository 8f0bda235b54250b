package api

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tinyl/core"
	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

var _ = Describe("Driver", func() {
	var (
		engine sim.Engine
		driver Driver
	)

	compile := func(src string) program.Program {
		prog, err := core.CompileProgram(src)
		Expect(err).NotTo(HaveOccurred())
		return prog
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		driver = DriverBuilder{}.
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Driver")
	})

	It("should run a program to completion", func() {
		prog := compile("a=+2+25;%a!")

		driver.MapProgram(prog)
		Expect(driver.Run()).To(Succeed())

		Expect(driver.Collect()).To(Equal([]int32{9}))
		Expect(driver.Variable('a')).To(Equal(int32(9)))
		Expect(driver.Cycles()).To(Equal(uint64(prog.Len())))
	})

	It("should feed READ from the input", func() {
		driver.FeedIn([]int32{7, 5})
		driver.MapProgram(compile("?a;?b;c=*ab;d=-ab;%c;%d!"))

		Expect(driver.Run()).To(Succeed())
		Expect(driver.Collect()).To(Equal([]int32{35, 2}))
	})

	It("should fail when the input runs out", func() {
		driver.MapProgram(compile("?a;%a!"))

		err := driver.Run()

		Expect(err).To(MatchError(ContainSubstring("input exhausted")))
		Expect(driver.Collect()).To(BeEmpty())
	})

	It("should fault on an undefined register", func() {
		driver.MapProgram(program.Program{Insts: []instr.Instruction{
			instr.LoadI(1, 3),
			instr.Binary(instr.ADD, 2, 1, 7),
		}})

		err := driver.Run()

		Expect(err).To(MatchError(ContainSubstring("r7 is not defined")))
		Expect(driver.Cycles()).To(Equal(uint64(1)))
	})

	It("should do nothing for an empty program", func() {
		driver.MapProgram(program.Program{})

		Expect(driver.Run()).To(Succeed())
		Expect(driver.Cycles()).To(BeZero())
	})
})
