package exptree

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// parseAll parses src with a fresh parser and checks that the parser's live
// node count matches what it returns.
func parseAll(t *testing.T, src string, opts ...ParseOption) (*Node, error) {
	t.Helper()
	toks := mustLex(t, src)
	p := newParser(opts)
	n, err := p.parseAll(toks)
	if err != nil {
		if n != nil {
			t.Errorf("%q: tree %v returned with error %v", src, n, err)
		}
		if p.live != 0 {
			t.Errorf("%q: %d nodes leaked after failed parse", src, p.live)
		}
		return nil, err
	}
	if p.live != n.Size() {
		t.Errorf("%q: parser has %d live nodes but tree has %d", src, p.live, n.Size())
	}
	if p.depth != 0 {
		t.Errorf("%q: parse ended at depth %d", src, p.depth)
	}
	return n, nil
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "3", "3"},
		{"real", "1.5e3", "1500"},
		{"leading-zeros", "007", "7"},
		{"exponent", "1e3", "1000"},
		{"trailing-zeros", "2.50", "2.5"},
		{"fraction", ".5*x", "(0.5 * x)"},
		{"ident", "x", "x"},
		{"mul", "2*3", "(2 * 3)"},
		{"div", "a/b", "(a / b)"},
		{"add", "1+2", "(1 + 2)"},
		{"sub", "1-2", "(1 - 2)"},
		{"add-chain", "1+2+3", "(1 + (2 + 3))"},
		{"sub-chain", "1-2-3", "(1 - (2 - 3))"},
		{"mixed-chain", "a+b-c+d", "(a + (b - (c + d)))"},
		{"prec-left", "2*3+4", "((2 * 3) + 4)"},
		{"prec-right", "2+3*4", "(2 + (3 * 4))"},
		{"prec-both", "a*b-c/d", "((a * b) - (c / d))"},
		{"paren-mul", "(1+2)*3", "((1 + 2) * 3)"},
		{"paren-chain", "(2*3)*4", "((2 * 3) * 4)"},
		{"paren-right", "2*(3*4)", "(2 * (3 * 4))"},
		{"paren-leaf", "(1)+(2)", "(1 + 2)"},
		{"paren-nested", "((x))", "x"},
		{"paren-deep", "(((1 + (2))) * ((y)))", "((1 + 2) * y)"},
		{"spaces", " 1 +\t2 ", "(1 + 2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := parseAll(t, c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := n.String(); got != c.want {
				t.Errorf("%q: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	n, err := parseAll(t, "1+2+3")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind() != KindSymbol || n.Op() != '+' {
		t.Fatalf("root is %v %q", n.Kind(), n.Op())
	}
	if l := n.Left(); l.Kind() != KindNumber || l.Text() != "1" {
		t.Errorf("left of root is %v %q", l.Kind(), l.Text())
	}
	r := n.Right()
	if r.Kind() != KindSymbol || r.Op() != '+' {
		t.Fatalf("right of root is %v %q", r.Kind(), r.Op())
	}
	if r.Left().Text() != "2" || r.Right().Text() != "3" {
		t.Errorf("right subtree is %v", r)
	}
	x, err := parseAll(t, "x")
	if err != nil {
		t.Fatal(err)
	}
	if x.Kind() != KindIdent || x.Text() != "x" || x.Left() != nil || x.Right() != nil {
		t.Errorf("x parsed as %#v", x)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		col   int
		text  string
		trail bool
	}{
		{"empty", "", 1, "", false},
		{"close", ")", 1, ")", false},
		{"unary", "+1", 1, "+", false},
		{"unary-neg", "-x", 1, "-", false},
		{"mul-chain", "2*3*4", 4, "*", true},
		{"div-chain", "8/4/2", 4, "/", true},
		{"juxtaposed", "1 2", 3, "2", true},
		{"juxtaposed-ident", "x y", 3, "y", true},
		{"dangling-add", "1+", 3, "", false},
		{"dangling-mul", "2*", 3, "", false},
		{"double-op", "2 * * 3", 5, "*", false},
		{"unclosed", "(1+2", 5, "", false},
		{"unopened", "(1))", 4, ")", true},
		{"empty-parens", "()", 2, ")", false},
		{"unknown-op", "2^3", 2, "^", true},
		{"unknown-sym", "1 + $", 5, "$", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := parseAll(t, c.src)
			if err == nil {
				t.Fatalf("%q parsed", c.src)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ie.Pos() != c.col {
				t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.col, ie.Pos(), err)
			}
			switch err := err.(type) {
			case *TrailingError:
				if !c.trail {
					t.Errorf("%q: want syntax error, got %v", c.src, err)
				}
				if err.Text != c.text {
					t.Errorf("%q: want trailing %q, got %q", c.src, c.text, err.Text)
				}
			case *SyntaxError:
				if c.trail {
					t.Errorf("%q: want trailing error, got %v", c.src, err)
				}
				if err.Text != c.text {
					t.Errorf("%q: want unexpected %q, got %q", c.src, c.text, err.Text)
				}
			default:
				t.Errorf("%q: unexpected error type %T", c.src, err)
			}
		})
	}
}

func TestParsePrefix(t *testing.T) {
	toks := mustLex(t, "2*3*4")
	n, rest, err := Parse(toks)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.String(); got != "(2 * 3)" {
		t.Errorf("prefix parsed as %s", got)
	}
	if rest.AtEnd() || rest.Index() != 3 {
		t.Errorf("rest at %d, want 3", rest.Index())
	}
	if got := rest.Rest().String(); got != "* 4" {
		t.Errorf("rest is %q", got)
	}

	_, rest, err = Parse(mustLex(t, ")"))
	if err == nil {
		t.Fatal("parsed )")
	}
	if rest.Index() != 0 {
		t.Errorf("failed parse moved cursor to %d", rest.Index())
	}

	n, rest, err = Parse(mustLex(t, "(1+2)"))
	if err != nil {
		t.Fatal(err)
	}
	if !rest.AtEnd() {
		t.Errorf("rest not at end: %d", rest.Index())
	}
	if got := n.String(); got != "(1 + 2)" {
		t.Errorf("parsed as %s", got)
	}
}

func TestParseDepth(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		depth int
		col   int
	}{
		{"flat", "2*3", 1, 0},
		{"paren-ok", "((1))", 3, 0},
		{"paren", "((1))", 2, 3},
		{"chain-ok", "1+2+3", 3, 0},
		{"chain", "1+2+3", 2, 5},
		{"unlimited", "((((((1))))))", 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := parseAll(t, c.src, MaxDepth(c.depth))
			if c.col == 0 {
				if err != nil {
					t.Fatalf("%q at depth %d: %v", c.src, c.depth, err)
				}
				if n == nil {
					t.Fatal("nil tree")
				}
				return
			}
			de, ok := err.(*DepthError)
			if !ok {
				t.Fatalf("%q at depth %d: want *DepthError, got %#v", c.src, c.depth, err)
			}
			if de.Pos() != c.col || de.Max != c.depth {
				t.Errorf("%q: want error at %d with max %d, got %v", c.src, c.col, c.depth, de)
			}
		})
	}
}

func TestParseDepthStopsEarly(t *testing.T) {
	// Without a limit, this much nesting would take far too long to parse.
	src := strings.Repeat("(", 40) + "1" + strings.Repeat(")", 40)
	_, err := parseAll(t, src, MaxDepth(10))
	de, ok := err.(*DepthError)
	if !ok {
		t.Fatalf("want *DepthError, got %#v", err)
	}
	if de.Pos() != 11 {
		t.Errorf("want error at 11, got %d", de.Pos())
	}
}

func TestParseDepthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("negative depth didn't panic")
		}
	}()
	MaxDepth(-1)
}

func TestParsingPreset(t *testing.T) {
	preset := ParsingPreset(MaxDepth(2))
	if _, err := ParseString("((1))", preset); err == nil {
		t.Error("preset depth not applied")
	}
	if _, err := ParseString("((1))", preset, MaxDepth(0)); err != nil {
		t.Errorf("option after preset didn't override it: %v", err)
	}
}

func TestParseTrace(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := ParseString("2*3", Trace(l)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"msg=operator", "msg=backtrack", "layer=expression"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace doesn't contain %s:\n%s", want, out)
		}
	}
	// A disabled logger must not be consulted.
	if _, err := ParseString("2*3", Trace(nil)); err != nil {
		t.Fatal(err)
	}
}

func TestParseString(t *testing.T) {
	if _, err := ParseString("1e"); err == nil {
		t.Error("malformed number parsed")
	} else if _, ok := err.(*LexError); !ok {
		t.Errorf("want *LexError, got %#v", err)
	}
	n, err := ParseString("x*(y+1)")
	if err != nil {
		t.Fatal(err)
	}
	if got := n.String(); got != "(x * (y + 1))" {
		t.Errorf("parsed as %s", got)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	srcs := []string{
		"3",
		"x",
		"1+2+3",
		"(1+2)*3",
		"(2*3)*4",
		"a-b/c+d",
		"((a+b)*(c-d))/e",
		"1.5e3*(x1-2)",
	}
	for _, src := range srcs {
		n, err := parseAll(t, src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		s := n.String()
		m, err := parseAll(t, s)
		if err != nil {
			t.Errorf("%q rendered as %q, which failed to parse: %v", src, s, err)
			continue
		}
		if got := m.String(); got != s {
			t.Errorf("%q rendered as %q, which reparsed as %q", src, s, got)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	toks, err := LexString("(a+b)*(c-d) + 2*x - y/3")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseAll(toks); err != nil {
			b.Fatal(err)
		}
	}
}
