package core

import (
	"bytes"
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("read-only file system")
}

var _ = Describe("Emitters", func() {
	It("should render one line per instruction", func() {
		var buf bytes.Buffer

		Expect(Compile("a=+2+25;%a!", NewTextEmitter(&buf))).To(Succeed())
		Expect(buf.String()).To(Equal(
			"LOADI r1 #2\n" +
				"LOADI r2 #2\n" +
				"LOADI r3 #5\n" +
				"ADD r4 r2 r3\n" +
				"ADD r5 r1 r4\n" +
				"STORE a r5\n" +
				"WRITE a\n"))
	})

	It("should report write failures", func() {
		err := Compile("%a!", NewTextEmitter(failingWriter{}))

		Expect(err).To(MatchError(ContainSubstring("read-only file system")))
	})

	It("should fan out to every emitter", func() {
		var (
			buf  bytes.Buffer
			prog program.Program
		)

		Expect(Compile("?a;%a!", MultiEmitter(NewTextEmitter(&buf), &prog))).
			To(Succeed())
		Expect(buf.String()).To(Equal("READ a\nWRITE a\n"))
		Expect(prog.Len()).To(Equal(2))
	})

	It("should stop fanning out at the first failure", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		first := NewMockEmitter(mockCtrl)
		second := NewMockEmitter(mockCtrl)
		first.EXPECT().Emit(instr.Write('a')).Return(errors.New("boom"))

		err := MultiEmitter(first, second).Emit(instr.Write('a'))

		Expect(err).To(MatchError("boom"))
	})

	It("should print a program table", func() {
		var buf bytes.Buffer
		prog, err := CompileProgram("a=7;%a!")
		Expect(err).NotTo(HaveOccurred())

		PrintProgram(&buf, prog)

		Expect(buf.String()).To(ContainSubstring("LOADI r1 #7"))
		Expect(buf.String()).To(ContainSubstring("STORE a r1"))
		Expect(buf.String()).To(ContainSubstring("Program (3 instructions)"))
	})
})
