// Package export renders a builder state as Go source.
//
// The generated file declares the compiled expression, a Match function and
// the tester subjects as a sample table, so the pattern built interactively
// can be dropped into a program together with its regression cases.
package export

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"github.com/dave/jennifer/jen"

	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

// Target selects the regex package the generated code imports.
type Target string

const (
	TargetCoregex Target = "coregex" // github.com/coregx/coregex
	TargetRegexp  Target = "regexp"  // standard library
	TargetRegexp2 Target = "regexp2" // github.com/dlclark/regexp2, ECMAScript mode
)

const (
	pathCoregex = "github.com/coregx/coregex"
	pathRegexp  = "regexp"
	pathRegexp2 = "github.com/dlclark/regexp2"
)

var (
	// ErrInvalidPattern is returned when the state does not compile to a
	// usable expression.
	ErrInvalidPattern = errors.New("pattern does not compile")

	// ErrInvalidOptions is returned for a bad package name, identifier or
	// target.
	ErrInvalidOptions = errors.New("invalid export options")
)

// Options controls the generated file.
type Options struct {
	// Package is the package clause. Default "patterns".
	Package string

	// Name is the exported identifier of the compiled expression.
	// Default "Pattern".
	Name string

	// Target is the regex package used. Default TargetCoregex.
	Target Target

	// Reducer compiles the state, and so decides which rules have issues.
	// Default: the reducer behind state.Compile.
	Reducer *state.Reducer
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = "patterns"
	}
	if o.Name == "" {
		o.Name = "Pattern"
	}
	if o.Target == "" {
		o.Target = TargetCoregex
	}
	return o
}

func (o Options) validate() error {
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("%w: package %q is not an identifier", ErrInvalidOptions, o.Package)
	}
	r, _ := utf8.DecodeRuneInString(o.Name)
	if !token.IsIdentifier(o.Name) || !unicode.IsUpper(r) {
		return fmt.Errorf("%w: name %q is not an exported identifier", ErrInvalidOptions, o.Name)
	}
	switch o.Target {
	case TargetCoregex, TargetRegexp, TargetRegexp2:
		return nil
	}
	return fmt.Errorf("%w: unknown target %q", ErrInvalidOptions, o.Target)
}

// Generate writes Go source for s to w.
//
// Rules with issues are exported the way they compiled, i.e. without their
// contribution. A pattern the target engine rejects is an error.
func Generate(w io.Writer, s state.AppState, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return err
	}

	var c rule.Compiled
	if opts.Reducer != nil {
		c = opts.Reducer.Compile(s)
	} else {
		c = state.Compile(s)
	}
	if c.Err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, c.Err)
	}
	if err := verify(c, opts.Target); err != nil {
		return fmt.Errorf("%w on %s: %v", ErrInvalidPattern, opts.Target, err)
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by regexbuilder. DO NOT EDIT.")

	name := opts.Name
	f.Commentf("%s matches %s.", name, c.Pattern)
	f.Var().Id(name).Op("=").Add(compileCall(c, opts.Target))
	f.Line()

	f.Commentf("Match%s reports whether s contains a match of %s.", name, name)
	f.Func().Id("Match"+name).Params(jen.Id("s").String()).Bool().Block(matchBody(name, opts.Target)...)
	f.Line()

	f.Commentf("%sSamples lists the tester subjects and whether %s must match them.", name, name)
	f.Var().Id(name+"Samples").Op("=").Index().Struct(
		jen.Id("Subject").String(),
		jen.Id("MustMatch").Bool(),
	).ValuesFunc(func(g *jen.Group) {
		for _, t := range s.Tester.Tests {
			g.Line().Values(jen.Dict{
				jen.Id("Subject"):   jen.Lit(t.Subject),
				jen.Id("MustMatch"): jen.Lit(t.MustMatch),
			})
		}
		if len(s.Tester.Tests) > 0 {
			g.Line()
		}
	})

	if err := f.Render(w); err != nil {
		return fmt.Errorf("failed to render source: %w", err)
	}
	return nil
}

// verify compiles c with the package the generated code calls, so that its
// MustCompile cannot panic at init.
func verify(c rule.Compiled, target Target) error {
	var err error
	switch target {
	case TargetRegexp:
		_, err = regexp.Compile(c.Expr())
	case TargetRegexp2:
		_, err = engine.Compile(engine.Regexp2, c.Source, c.EngineFlags())
	default:
		_, err = coregex.Compile(c.Expr())
	}
	return err
}

func compileCall(c rule.Compiled, target Target) jen.Code {
	switch target {
	case TargetRegexp:
		return jen.Qual(pathRegexp, "MustCompile").Call(jen.Lit(c.Expr()))
	case TargetRegexp2:
		return jen.Qual(pathRegexp2, "MustCompile").Call(jen.Lit(c.Source), regexp2Options(c.EngineFlags()))
	default:
		return jen.Qual(pathCoregex, "MustCompile").Call(jen.Lit(c.Expr()))
	}
}

// regexp2Options mirrors the options the engine package compiles with.
func regexp2Options(flags engine.Flags) jen.Code {
	mode := "ECMAScript"
	if flags.DotAll {
		mode = "Singleline"
	}
	opts := jen.Qual(pathRegexp2, mode)
	if flags.IgnoreCase {
		opts = opts.Op("|").Qual(pathRegexp2, "IgnoreCase")
	}
	if flags.Multiline {
		opts = opts.Op("|").Qual(pathRegexp2, "Multiline")
	}
	return opts
}

func matchBody(name string, target Target) []jen.Code {
	if target == TargetRegexp2 {
		return []jen.Code{
			jen.List(jen.Id("ok"), jen.Id("_")).Op(":=").Id(name).Dot("MatchString").Call(jen.Id("s")),
			jen.Return(jen.Id("ok")),
		}
	}
	return []jen.Code{jen.Return(jen.Id(name).Dot("MatchString").Call(jen.Id("s")))}
}
