package core

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cursor", func() {
	It("should peek without consuming", func() {
		c := NewCursor("a=1!")

		Expect(c.Peek()).To(Equal(byte('a')))
		Expect(c.Peek()).To(Equal(byte('a')))
		Expect(c.Pos()).To(Equal(0))
	})

	It("should allow advancing onto the end of the input", func() {
		c := NewCursor("!")

		Expect(c.Advance()).To(Succeed())
		Expect(c.AtEnd()).To(BeTrue())
		Expect(c.Peek()).To(Equal(EndMarker))
		Expect(c.Remaining()).To(Equal(0))
	})

	It("should fail when advancing past the end", func() {
		c := NewCursor("")

		err := c.Advance()

		Expect(errors.Is(err, ErrEndOfInput)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("position 0"))
	})
})

var _ = Describe("RegisterAllocator", func() {
	It("should hand out 1, 2, 3, ...", func() {
		a := NewRegisterAllocator()

		Expect(a.Count()).To(Equal(0))
		Expect(a.Next()).To(Equal(1))
		Expect(a.Next()).To(Equal(2))
		Expect(a.Next()).To(Equal(3))
		Expect(a.Count()).To(Equal(3))
	})
})

var _ = Describe("ReadInput", func() {
	It("should drop all whitespace", func() {
		src, err := ReadInput(strings.NewReader("a = + 2 2 ;\n\t% a\r\n !\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(src).To(Equal("a=+22;%a!"))
	})
})
