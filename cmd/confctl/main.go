package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/trasz/confctl"
)

// This file implements the flag surface and mutual-exclusion checks of
// spec.md §6.2, built around urfave/cli/v2 in place of the original
// getopt(3) loop. main() itself is the "external collaborator" the
// core package's doc comments refer to: it owns argument validation,
// file I/O dispatch, and process exit codes, none of which the core
// package touches.
func main() {
	log := newLogger()
	defer log.Sync()

	app := &cli.App{
		Name:            "confctl",
		Usage:           "query and edit brace-delimited configuration files in place",
		UsageText:       "confctl [-n] config-path [name...]\n   confctl [-n] -a config-path\n   confctl [-I -C -E -S] -w name=value... config-path\n   confctl [-I -C -E -S] -x name... config-path",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "a", Usage: "print all variables"},
			&cli.BoolFlag{Name: "n", Usage: "print values only, one per line"},
			&cli.BoolFlag{Name: "I", Usage: "rewrite the file in place instead of atomic rename"},
			&cli.BoolFlag{Name: "C", Usage: "recognize // and /* */ comments"},
			&cli.BoolFlag{Name: "E", Usage: "put = between name and value in added entries"},
			&cli.BoolFlag{Name: "S", Usage: "require ; to terminate a leaf"},
			&cli.StringSliceFlag{Name: "w", Usage: "merge name=value into the tree (repeatable)"},
			&cli.StringSliceFlag{Name: "x", Usage: "remove name from the tree (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			return run(c, log)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(c *cli.Context, log logger) error {
	aflag := c.Bool("a")
	nflag := c.Bool("n")
	wexprs := c.StringSlice("w")
	xexprs := c.StringSlice("x")
	names := c.Args().Slice()

	if len(names) < 1 {
		return fmt.Errorf("missing config file path")
	}
	path := names[0]
	names = names[1:]

	if len(wexprs) > 0 && len(names) > 0 {
		return fmt.Errorf("-w and variable names are mutually exclusive")
	}
	if len(xexprs) > 0 && len(names) > 0 {
		return fmt.Errorf("-x and variable names are mutually exclusive")
	}
	if aflag && len(wexprs) > 0 {
		return fmt.Errorf("-a and -w are mutually exclusive")
	}
	if aflag && len(xexprs) > 0 {
		return fmt.Errorf("-a and -x are mutually exclusive")
	}
	if nflag && len(wexprs) > 0 {
		return fmt.Errorf("-n and -w are mutually exclusive")
	}
	if nflag && len(xexprs) > 0 {
		return fmt.Errorf("-n and -x are mutually exclusive")
	}
	if aflag && len(names) > 0 {
		return fmt.Errorf("-a and variable names are mutually exclusive")
	}
	if !aflag && len(wexprs) == 0 && len(xexprs) == 0 && len(names) == 0 {
		return fmt.Errorf("neither -a, -w, -x, or variable names specified")
	}

	syn := confctl.Syntax{
		EqualsSign:         c.Bool("E"),
		Semicolon:          c.Bool("S"),
		SlashSlashComments: c.Bool("C"),
		SlashStarComments:  c.Bool("C"),
		RewriteInPlace:     c.Bool("I"),
	}

	f, err := confctl.ParseFile(path, syn)
	if err != nil {
		return err
	}

	merge, err := accumulate(wexprs, syn)
	if err != nil {
		return err
	}
	remove, err := accumulate(xexprs, syn)
	if err != nil {
		return err
	}

	if merge == nil && remove == nil {
		if !aflag {
			filter, err := accumulate(names, syn)
			if err != nil {
				return err
			}
			if err := confctl.Filter(f.Root(), filter); err != nil {
				return err
			}
		}
		return printLines(os.Stdout, f, nflag)
	}

	// Not using Filter here: -w/-x genuinely remove and attach nodes
	// (so that -x and -w together can replace a subtree), whereas
	// Filter only toggles visibility and would need to be inverted to
	// express "hide everything except what matched".
	if remove != nil {
		if err := confctl.Remove(f.Root(), remove); err != nil {
			return err
		}
	}
	if merge != nil {
		if err := confctl.Merge(f.Root(), merge, syn); err != nil {
			return err
		}
	}
	return f.Save("")
}

// accumulate decodes each expr's vis escapes, parses the result with
// ParsePath, and merges the chains together via confctl.Merge's own
// two-pass algorithm, reproducing cc_var_merge's repeated-flag
// accumulation (each -w/-x builds on the last so duplicate-named
// segments land on the same node instead of becoming siblings).
func accumulate(exprs []string, syn confctl.Syntax) (*confctl.Node, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	var acc *confctl.Node
	for _, expr := range exprs {
		decoded, err := unescapeC(expr)
		if err != nil {
			return nil, err
		}
		chain, err := confctl.ParsePath(decoded)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = chain
			continue
		}
		if err := confctl.Merge(acc, chain, syn); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// printLines implements the formatting half of cv_print_lines/cc_print:
// each visible leaf's path segments and value are vis-escaped
// individually, then joined with '.' and '=' (spec.md §6.3). The core
// package only supplies the unescaped Leaf structure; escaping and
// line assembly are this front-end's job.
func printLines(w *os.File, f *confctl.File, valuesOnly bool) error {
	var b strings.Builder
	for _, leaf := range f.Leaves() {
		value := visEncode(leaf.Value)
		if valuesOnly {
			b.WriteString(value)
			b.WriteByte('\n')
			continue
		}
		for i, seg := range leaf.Path {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(visEncode(seg))
		}
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	_, err := w.WriteString(b.String())
	return err
}

type logger interface {
	Errorf(template string, args ...interface{})
}
