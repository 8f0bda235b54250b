package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/tinyl/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Name           string
	InstCount      int
	LintIssues     []Issue
	RegisterIssues []Issue
	FieldIssues    []Issue
	VariableIssues []Issue
	SimulationErr  error
	SimulationOK   bool
	Inputs         []int32
	Outputs        []int32
	Final          *program.MachineState
}

// GenerateReport runs both lint and functional simulation, returns a report
func GenerateReport(name string, prog program.Program, inputs []int32) *VerificationReport {
	report := &VerificationReport{
		Name:      name,
		InstCount: prog.Len(),
		Inputs:    inputs,
	}

	// Run lint
	report.LintIssues = RunLint(prog)

	// Categorize issues
	for _, issue := range report.LintIssues {
		switch issue.Type {
		case IssueRegister:
			report.RegisterIssues = append(report.RegisterIssues, issue)
		case IssueField:
			report.FieldIssues = append(report.FieldIssues, issue)
		case IssueVariable:
			report.VariableIssues = append(report.VariableIssues, issue)
		}
	}

	// Run functional simulation
	fs := NewFunctionalSimulator(prog)
	fs.FeedIn(inputs...)
	report.SimulationErr = fs.Run()
	report.SimulationOK = report.SimulationErr == nil
	report.Outputs = fs.Outputs()
	report.Final = fs.State()

	return report
}

// Passed reports whether the program has no lint issues and simulated
// successfully.
func (r *VerificationReport) Passed() bool {
	return len(r.LintIssues) == 0 && r.SimulationOK
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "TINYL PROGRAM VERIFICATION REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\nLoaded %d instructions\n", r.InstCount)

	// STAGE 1: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		issueTable := table.NewWriter()
		issueTable.SetTitle(fmt.Sprintf("Lint Issues (%d)", len(r.LintIssues)))
		issueTable.AppendHeader(table.Row{"Type", "Inst", "Message"})
		for _, issue := range r.LintIssues {
			issueTable.AppendRow(table.Row{issue.Type, issue.Index, issue.Message})
		}
		fmt.Fprintln(w, issueTable.Render())
	}

	// STAGE 2: FUNCTIONAL SIMULATION
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: FUNCTIONAL SIMULATION")
	fmt.Fprintln(w, separator)

	if r.SimulationOK {
		fmt.Fprintln(w, "Simulation completed successfully")
	} else {
		fmt.Fprintf(w, "Simulation error: %v\n", r.SimulationErr)
	}

	fmt.Fprintf(w, "Inputs:  %v\n", r.Inputs)
	fmt.Fprintf(w, "Outputs: %v\n", r.Outputs)

	if r.Final != nil {
		varTable := table.NewWriter()
		varTable.SetTitle("Variables")
		header := table.Row{}
		row := table.Row{}
		for i, value := range r.Final.Variables {
			header = append(header, string(rune('a'+i)))
			row = append(row, value)
		}
		varTable.AppendHeader(header)
		varTable.AppendRow(row)
		fmt.Fprintln(w, varTable.Render())
	}

	// STAGE 3: SUMMARY
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d REGISTER, %d FIELD, %d VARIABLE)\n",
		len(r.LintIssues), len(r.RegisterIssues), len(r.FieldIssues), len(r.VariableIssues))
	simStatus := "SUCCESS"
	if !r.SimulationOK {
		simStatus = "FAILED: " + r.SimulationErr.Error()
	}
	fmt.Fprintf(w, "Simulation Result: %s\n", simStatus)

	if r.Passed() {
		fmt.Fprintln(w, "PROGRAM PASSED ALL CHECKS")
	}

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
