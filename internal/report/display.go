package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

var categoryLabels = map[Category]string{
	GeneratorError:    "Generator",
	InvalidSignature:  "Signature",
	BackendError:      "Backend",
	DriverError:       "Driver",
}

// PrintInfo prints a tagged, colored informational line.
func PrintInfo(tag, msg string) {
	infoStyleBG.Print(" " + tag + " ")
	infoColorFG.Println(" " + msg)
}

// PrintWarning prints a tagged, colored warning line.
func PrintWarning(tag, msg string) {
	warnStyleBG.Print(" " + tag + " ")
	warnColorFG.Println(" " + msg)
}

// PrintError prints a tagged, colored error line.
func PrintError(tag string, err error) {
	errorStyleBG.Print(" " + tag + " ")
	errorColorFG.Println(" " + err.Error())
}

// Display renders a single diagnostic to stdout: a one-line banner giving
// its row/col prefix, module path, and category, optionally followed by the
// underlined source excerpt when the diagnostic carries a span.
func Display(d Diagnostic) {
	label := categoryLabels[d.Category]
	if d.IsError {
		errorStyleBG.Print(" " + label + " Error ")
	} else {
		warnStyleBG.Print(" " + label + " Warning ")
	}

	if d.Span != nil {
		fmt.Printf(" %s: %s\n", d.Span.Start.String(), d.Message)
		displaySourceText(d.Span)
	} else {
		fmt.Printf(" %s: %s\n", d.Module, d.Message)
	}
}

// displaySourceText prints the source lines covered by span with a
// caret-underline beneath the erroneous range, matching the layout of
// src/report/display.go. If the source file cannot be opened, no excerpt is
// printed.
func displaySourceText(span *Span) {
	f, err := os.Open(span.Start.File)
	if err != nil {
		return
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for ln := 1; sc.Scan(); ln++ {
		if span.Start.Row <= ln && ln <= span.End.Row {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}
	if len(lines) == 0 {
		return
	}

	maxLineNumLen := len(strconv.Itoa(span.End.Row))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmt, i+span.Start.Row)
		fmt.Println(line)

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		var prefix, suffix int
		if i == 0 {
			prefix = span.Start.Col - 1
		}
		if i == len(lines)-1 {
			suffix = len(line) - (span.End.Col - 1)
		}
		if suffix < 0 {
			suffix = 0
		}
		underline := len(line) - prefix - suffix
		if underline < 1 {
			underline = 1
		}
		fmt.Println(strings.Repeat(" ", prefix) + strings.Repeat("^", underline))
	}
	fmt.Println()
}

// DisplayAll renders every diagnostic in a collector, in post order.
func DisplayAll(c *Collector) {
	for _, d := range c.All() {
		Display(d)
	}
}
