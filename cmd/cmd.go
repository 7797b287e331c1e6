package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pyrite-lang/pyrite/ast"
	"github.com/pyrite-lang/pyrite/fstring"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the pyrite CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "pyrite",
		Usage:                  "Python front-end toolkit: AST validation and f-string inspection",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file (max_depth)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate a JSON AST dump",
				ArgsUsage: "<file.json | ->",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "Print the decoded tree before validating",
					},
				},
				Action: checkAction,
			},
			{
				Name:      "fstr",
				Usage:     "Parse a formatted string literal and print its fragments",
				ArgsUsage: "<raw-text>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "prefix",
						Aliases: []string{"p"},
						Usage:   "Literal prefix letters",
						Value:   "f",
					},
					&cli.StringFlag{
						Name:    "quote",
						Aliases: []string{"q"},
						Usage:   "Quote style (informational)",
						Value:   "'",
					},
				},
				Action: fstrAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		red, reset := errorColors()
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", red, reset, err)
		os.Exit(1)
	}
}

// errorColors returns ANSI color codes for error output, empty when
// stderr is not a terminal or NO_COLOR is set.
func errorColors() (string, string) {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
		return "", ""
	}
	return "\033[31m", "\033[0m"
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: pyrite check <file.json | ->")
	}
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	m, err := ast.DecodeModule(data)
	if err != nil {
		return err
	}
	if cmd.Bool("dump") {
		fmt.Println(ast.Dump(m))
	}

	checks := ast.CheckChain{ast.Structural(ast.Options{MaxDepth: cfg.MaxDepth})}
	if err := checks.Run(m); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Println("ok")
	return nil
}

func fstrAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: pyrite fstr [-p prefix] [-q quote] <raw-text>")
	}
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	p := &fstring.Parser{ParseExpr: parseInspectExpr, MaxDepth: cfg.MaxDepth}
	expr, err := p.Parse(fstring.Literal{
		Prefix: cmd.String("prefix"),
		Quote:  cmd.String("quote"),
		Raw:    cmd.Args().First(),
	})
	if err != nil {
		return err
	}
	fmt.Println(ast.Dump(expr))
	return nil
}
