// Some helpers using closures to generate values and tinyL programs
package valgen

import (
	"math/rand"
	"strings"
)

func MakeConstGen(constant int32) func() int32 {
	return func() int32 {
		return constant
	}
}

func MakeIncreasingGen(start int32) func() int32 {
	current := start
	return func() int32 {
		current++
		return current
	}
}

// Take calls gen n times and collects the values.
func Take(gen func() int32, n int) []int32 {
	values := make([]int32, n)
	for i := range values {
		values[i] = gen()
	}

	return values
}

const (
	operators = "+-*&|"
	variables = "abcdef"
	digits    = "0123456789"
)

// MakeProgramGen returns a generator of random, syntactically valid tinyL
// programs. Expressions nest at most maxDepth operators deep and each program
// has between 1 and maxStmts statements. The same seed gives the same
// sequence of programs.
func MakeProgramGen(seed int64, maxDepth, maxStmts int) func() string {
	r := rand.New(rand.NewSource(seed))

	pick := func(s string) byte {
		return s[r.Intn(len(s))]
	}

	var expr func(sb *strings.Builder, depth int)
	expr = func(sb *strings.Builder, depth int) {
		switch {
		case depth < maxDepth && r.Intn(2) == 0:
			sb.WriteByte(pick(operators))
			expr(sb, depth+1)
			expr(sb, depth+1)
		case r.Intn(2) == 0:
			sb.WriteByte(pick(variables))
		default:
			sb.WriteByte(pick(digits))
		}
	}

	return func() string {
		var sb strings.Builder

		n := 1 + r.Intn(maxStmts)
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteByte(';')
			}

			switch r.Intn(4) {
			case 0:
				sb.WriteByte('?')
				sb.WriteByte(pick(variables))
			case 1:
				sb.WriteByte('%')
				sb.WriteByte(pick(variables))
			default:
				sb.WriteByte(pick(variables))
				sb.WriteByte('=')
				expr(&sb, 0)
			}
		}

		sb.WriteByte('!')

		return sb.String()
	}
}

// CountReads returns how many READ statements a generated program contains.
func CountReads(src string) int {
	return strings.Count(src, "?")
}
