// Command lexgen compiles a YAML rule spec into an automaton, reports
// regex errors against their source rule, and can dump the NFA/DFA as
// Graphviz DOT for inspection.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kaslex/lexgen/charset"
	"github.com/kaslex/lexgen/dfa"
	"github.com/kaslex/lexgen/lexgen"
	"github.com/kaslex/lexgen/nfa"
	"github.com/kaslex/lexgen/regexast"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

type options struct {
	specFile string
	nfaDot   string
	dfaDot   string
	verbose  bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compiles a lexer rule spec into an automaton.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.specFile, "spec", "s", "", "YAML rule spec to compile"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVar(&opts.nfaDot, "nfadot", "", "write the NFA graph in DOT format to this file"),
		flagSet.StringVar(&opts.dfaDot, "dfadot", "", "write the DFA graph in DOT format to this file"),
		flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "display verbose output"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}
	if opts.verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if opts.specFile == "" {
		gologger.Fatal().Msgf("-spec is required")
	}
	return opts
}

func main() {
	opts := parseFlags()

	f, err := os.Open(opts.specFile)
	if err != nil {
		gologger.Fatal().Msgf("opening spec: %v", err)
	}
	defer f.Close()

	spec, err := lexgen.LoadSpec(f)
	if err != nil {
		gologger.Fatal().Msgf("loading spec: %v", err)
	}
	gologger.Verbose().Msgf("loaded %d rule(s) from %s", len(spec.Rules), opts.specFile)

	if opts.nfaDot != "" || opts.dfaDot != "" {
		if err := dumpGraphs(spec.Rules, opts.nfaDot, opts.dfaDot); err != nil {
			gologger.Warning().Msgf("dumping graphs: %v", err)
		}
	}

	if _, err := lexgen.Compile(spec.Rules); err != nil {
		var compileErr *lexgen.CompileError
		if errorsAsCompileError(err, &compileErr) {
			gologger.Fatal().Msgf("rule %q: %v", compileErr.RuleName, compileErr.Err)
		}
		gologger.Fatal().Msgf("%v", err)
	}
	gologger.Info().Msgf("compiled %d rule(s) successfully", len(spec.Rules))
}

func errorsAsCompileError(err error, target **lexgen.CompileError) bool {
	ce, ok := err.(*lexgen.CompileError)
	if ok {
		*target = ce
	}
	return ok
}

// dumpGraphs re-parses the spec independently of Compile so it can
// still emit a graph over whichever rules parsed cleanly, even when
// one rule's pattern is broken and Compile itself would abort before
// producing anything to graph.
func dumpGraphs(rules []lexgen.Rule, nfaPath, dfaPath string) error {
	b := nfa.NewBuilder()
	var heads []int
	for i, r := range rules {
		ast, err := regexast.Parse(r.Pattern)
		if err != nil {
			gologger.Warning().Msgf("rule %q: skipping from graph: %v", r.Name, err)
			continue
		}
		frag := b.Build(ast)
		b.SetAccept(frag, i)
		heads = append(heads, frag.Head...)
	}
	if len(heads) == 0 {
		return fmt.Errorf("no rule parsed cleanly enough to graph")
	}
	n := b.Nfa(dedupeInts(heads))

	if nfaPath != "" {
		if err := os.WriteFile(nfaPath, []byte(nfaDot(n)), 0644); err != nil {
			return err
		}
	}
	if dfaPath != "" {
		d := dfa.Build(n)
		if err := os.WriteFile(dfaPath, []byte(dfaDot(d)), 0644); err != nil {
			return err
		}
	}
	return nil
}

func dedupeInts(xs []int) []int {
	seen := make(map[int]bool, len(xs))
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

// nfaDot renders an NFA as Graphviz DOT: one node per position state,
// labeled with its matched byte range, one edge per table entry.
func nfaDot(n *nfa.Nfa) string {
	var sb strings.Builder
	sb.WriteString("digraph NFA {\n\trankdir=LR;\n")
	for i, s := range n.States {
		shape := "circle"
		if s.EndNum != nfa.NoAccept {
			shape = "doublecircle"
		}
		fmt.Fprintf(&sb, "\tn%d [shape=%s, label=%q];\n", i, shape, s.Range.String())
		for _, t := range s.Table {
			fmt.Fprintf(&sb, "\tn%d -> n%d;\n", i, t)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func dfaDot(d *dfa.Dfa) string {
	var sb strings.Builder
	sb.WriteString("digraph DFA {\n\trankdir=LR;\n")
	for i, s := range d.States {
		shape := "circle"
		if s.Accept != dfa.NoAccept {
			shape = "doublecircle"
		}
		fmt.Fprintf(&sb, "\tn%d [shape=%s, label=\"%d\"];\n", i, shape, s.Accept)
		for _, e := range s.Table {
			fmt.Fprintf(&sb, "\tn%d -> n%d [label=%q];\n", i, e.Target, rangeLabel(e.Range))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func rangeLabel(r charset.Range) string {
	return r.String()
}
