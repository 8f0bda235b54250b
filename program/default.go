package program

// Define the behavior of the ADD instruction in the tinyL ISA.
func instADD(src1 int32, src2 int32) int32 {
	return src1 + src2
}

func instSUB(src1 int32, src2 int32) int32 {
	return src1 - src2
}

func instMUL(src1 int32, src2 int32) int32 {
	return src1 * src2
}

func instAND(src1 int32, src2 int32) int32 {
	return src1 & src2
}

func instOR(src1 int32, src2 int32) int32 {
	return src1 | src2
}
