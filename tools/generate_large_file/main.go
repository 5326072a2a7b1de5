// Large Source File Generator
//
// This tool generates a large ML source file for performance testing and
// profiling. It emits a mix of phrase shapes to stress-test the scanner, the
// parser and the incremental feed path.
//
// Usage:
//
//	go run main.go > large.ml
//	go run main.go 20000000 > large.ml  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

const defaultTargetSize = 10 * 1024 * 1024 // 10MB

var (
	nouns = []string{
		"rate", "total", "count", "width", "height", "offset", "limit",
		"scale", "weight", "price", "index", "depth", "span", "delta",
	}

	adjectives = []string{
		"base", "max", "min", "next", "prev", "raw", "mean", "last",
	}

	words = []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet",
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	bytesWritten := 0
	phraseCount := 0
	defined := []string{"seed"}
	fmt.Println("let seed = 1;;")

	for bytesWritten < targetSize {
		var output string
		intBinding := false
		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - Simple arithmetic binding
			output = generateArithmeticBinding(defined)
			intBinding = true
		case 3, 4: // 20% - Function binding
			output = generateFunctionBinding()
		case 5: // 10% - Recursive function
			output = generateRecursiveBinding()
		case 6: // 10% - Conditional
			output = generateConditionalBinding(defined)
			intBinding = true
		case 7: // 10% - String binding
			output = generateStringBinding()
		case 8: // 10% - Local binding expression
			output = generateLetInBinding()
		case 9: // 10% - Comment block
			output = generateComment()
		}

		fmt.Print(output)
		bytesWritten += len(output)
		if name := bindingName(output); name != "" {
			// Later phrases only reference int bindings so the generated
			// file stays well typed.
			if intBinding {
				defined = append(defined, name)
			}
			phraseCount++
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d phrases\n", bytesWritten, phraseCount)
}

func writeHeader() {
	fmt.Println("# Large source file for performance testing")
	fmt.Println()
}

var nameSeq int

func freshName() string {
	nameSeq++
	return fmt.Sprintf("%s_%s_%d",
		adjectives[rand.Intn(len(adjectives))],
		nouns[rand.Intn(len(nouns))],
		nameSeq)
}

// bindingName extracts the bound name so later phrases can reference it.
func bindingName(phrase string) string {
	var name string
	if _, err := fmt.Sscanf(phrase, "let %s", &name); err != nil {
		return ""
	}
	if name == "rec" {
		if _, err := fmt.Sscanf(phrase, "let rec %s", &name); err != nil {
			return ""
		}
	}
	return name
}

func generateArithmeticBinding(defined []string) string {
	name := freshName()
	ops := []string{"+", "-", "*"}

	left := strconv.Itoa(rand.Intn(1000))
	if rand.Intn(3) == 0 {
		left = defined[rand.Intn(len(defined))]
	}
	right := strconv.Itoa(rand.Intn(1000) + 1)

	return fmt.Sprintf("let %s = %s %s %s;;\n", name, left, ops[rand.Intn(len(ops))], right)
}

func generateFunctionBinding() string {
	name := freshName()
	params := []string{"a", "b", "c"}[:rand.Intn(3)+1]

	body := params[0]
	for _, p := range params[1:] {
		body = fmt.Sprintf("%s + %s", body, p)
	}

	out := "let " + name
	for _, p := range params {
		out += " " + p
	}
	return fmt.Sprintf("%s = %s;;\n", out, body)
}

func generateRecursiveBinding() string {
	name := freshName()
	return fmt.Sprintf("let rec %s n = if n < 2 then 1 else n * %s (n - 1);;\n", name, name)
}

func generateConditionalBinding(defined []string) string {
	name := freshName()
	ref := defined[rand.Intn(len(defined))]
	return fmt.Sprintf("let %s = if %s < %d then %d else %d;;\n",
		name, ref, rand.Intn(100), rand.Intn(10), rand.Intn(10)+10)
}

func generateStringBinding() string {
	name := freshName()
	w1 := words[rand.Intn(len(words))]
	w2 := words[rand.Intn(len(words))]
	return fmt.Sprintf("let %s = \"%s\" ^ \" \" ^ \"%s\";;\n", name, w1, w2)
}

func generateLetInBinding() string {
	name := freshName()
	return fmt.Sprintf("let %s = let inner = %d in inner * inner;;\n", name, rand.Intn(100))
}

func generateComment() string {
	return fmt.Sprintf("# %s %s %s\n",
		words[rand.Intn(len(words))],
		words[rand.Intn(len(words))],
		words[rand.Intn(len(words))])
}
