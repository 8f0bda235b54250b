// Package verify checks compiled tinyL programs without running the
// cycle-level driver.
//
// It has two complementary stages:
//
// 1. Static Lint (lint.go): structural checks over the instruction stream
//   - REGISTER checks: every register is defined once, before use, and
//     registers are numbered 1, 2, 3, ... in definition order
//   - FIELD checks: unused fields hold instr.EmptyField, used ones do not,
//     immediates are single digits
//   - VARIABLE checks: only the letters a-f are addressed
//
// 2. Functional Simulator (funcsim.go): straight-line interpreter
//   - Variables a-f start at zero
//   - READ consumes the next value of the input queue
//   - WRITE appends the variable to the output list
//
// # Usage Example
//
//	prog, _ := program.LoadProgramFile("tinyL.out")
//
//	issues := verify.RunLint(prog)
//	for _, issue := range issues {
//	    log.Printf("[%s] inst=%d: %s", issue.Type, issue.Index, issue.Message)
//	}
//
//	fs := verify.NewFunctionalSimulator(prog)
//	fs.FeedIn(3, 4)
//	if err := fs.Run(); err != nil {
//	    panic(err)
//	}
//	fmt.Println(fs.Outputs())
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueRegister IssueType = "REGISTER" // use before definition, redefinition, numbering
	IssueField    IssueType = "FIELD"    // empty/used field mismatch, bad immediate
	IssueVariable IssueType = "VARIABLE" // letter outside a-f
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // REGISTER, FIELD or VARIABLE
	Index   int                    // Instruction index or -1
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
