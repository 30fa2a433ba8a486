// Command axo drives the scan/parse/resolve pipeline over one or more
// .axo source files, rendering accumulated diagnostics to stderr.
// Flags are bound directly on the root command, and RunE returns a
// non-zero-exit-carrying error rather than calling os.Exit mid-flight
// so cobra's own deferred cleanup still runs.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/liagha/axo"
	"github.com/liagha/axo/parse"
	"github.com/liagha/axo/resolve"
	"github.com/liagha/axo/scan"
)

var (
	verbose    bool
	showTokens bool
	showAST    bool
	pathFlag   string
	showTime   bool
)

func main() {
	root := &cobra.Command{
		Use:           "axo [flags] <file...>",
		Short:         "Compile .axo source files through scan, parse, and resolve",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, args)
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print per-stage progress")
	root.Flags().BoolVarP(&showTokens, "tokens", "t", false, "print the token stream for each file")
	root.Flags().BoolVarP(&showAST, "ast", "a", false, "print the parsed element tree for each file")
	root.Flags().StringVarP(&pathFlag, "path", "p", "", "override the location reported in diagnostics")
	root.Flags().BoolVar(&showTime, "time", false, "print per-stage timing")

	if err := root.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// exitCode lets RunE report a specific exit status without calling
// os.Exit before cobra's own deferred cleanup runs.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", e) }

func runAll(cmd *cobra.Command, paths []string) error {
	hadErrors := false
	for _, path := range paths {
		ok, err := compileOne(cmd, path)
		if err != nil {
			return err
		}
		if !ok {
			hadErrors = true
		}
	}
	if hadErrors {
		return exitCode(1)
	}
	return nil
}

func compileOne(cmd *cobra.Command, path string) (ok bool, err error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	loc := axo.FileLocation(path)
	if pathFlag != "" {
		loc = axo.FileLocation(pathFlag)
	}

	ctx := axo.NewContext(nil)

	scanStart := time.Now()
	tokens := scan.Scan(source, loc, ctx)
	scanElapsed := time.Since(scanStart)
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: scanned %d tokens\n", path, len(tokens))
	}
	if showTokens {
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
	}

	parseStart := time.Now()
	elements := parse.Parse(tokens, ctx)
	parseElapsed := time.Since(parseStart)
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: parsed %d top-level elements\n", path, len(elements))
	}
	if showAST {
		for _, el := range elements {
			printElement(os.Stdout, el, 0)
		}
	}

	resolveStart := time.Now()
	r := resolve.NewResolver(ctx)
	analyses := r.Resolve(elements)
	resolveElapsed := time.Since(resolveStart)
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: resolved %d analyses\n", path, len(analyses))
	}

	if showTime {
		fmt.Fprintf(os.Stderr, "%s: scan %v, parse %v, resolve %v\n", path, scanElapsed, parseElapsed, resolveElapsed)
	}

	if ctx.HasErrors() {
		fmt.Fprint(os.Stderr, axo.RenderAll(source, ctx))
		return false, nil
	}
	return true, nil
}

func printElement(w *os.File, el parse.Element, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	fmt.Fprintf(w, "%s @ %s\n", el.Kind, el.Span)

	if el.Left != nil {
		printElement(w, *el.Left, depth+1)
	}
	if el.Right != nil {
		printElement(w, *el.Right, depth+1)
	}
	if el.Operand != nil {
		printElement(w, *el.Operand, depth+1)
	}
	if el.Target != nil {
		printElement(w, *el.Target, depth+1)
	}
	if el.Condition != nil {
		printElement(w, *el.Condition, depth+1)
	}
	if el.Then != nil {
		printElement(w, *el.Then, depth+1)
	}
	if el.Else != nil {
		printElement(w, *el.Else, depth+1)
	}
	if el.Body != nil {
		printElement(w, *el.Body, depth+1)
	}
	if el.Iterable != nil {
		printElement(w, *el.Iterable, depth+1)
	}
	if el.Value != nil {
		printElement(w, *el.Value, depth+1)
	}
	if el.Target2 != nil {
		printElement(w, *el.Target2, depth+1)
	}
	for _, item := range el.Items {
		printElement(w, item, depth+1)
	}
}
