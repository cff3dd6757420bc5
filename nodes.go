package exptree

import (
	"strconv"
	"strings"
)

// Node is a node in an expression tree. Number and identifier nodes are
// leaves; symbol nodes are binary operators with exactly two children, which
// they own exclusively.
type Node struct {
	kind Kind

	// text is the canonical literal of a number or the name of an identifier.
	text string
	op   byte

	left  *Node
	right *Node
}

// Kind is the type of a tree node.
type Kind int8

const (
	// KindNone marks a released or invalid node.
	KindNone Kind = iota
	// KindNumber is a number literal leaf.
	KindNumber
	// KindIdent is an identifier leaf.
	KindIdent
	// KindSymbol is a binary operator.
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindIdent:
		return "Ident"
	case KindSymbol:
		return "Symbol"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the binary operators a symbol node may hold.
const Operators = "+-*/"

// NewNumber creates a number leaf from a decimal literal. The leaf holds the
// literal in canonical form, so 007 and 7.0 both become 7 and 1e3 becomes
// 1000. Panics if lit is not a number literal.
func NewNumber(lit string) *Node {
	d, ok := decimal(lit)
	if !ok {
		panic("exptree: invalid number literal " + strconv.Quote(lit))
	}
	return &Node{kind: KindNumber, text: d}
}

// NewIdent creates an identifier leaf.
func NewIdent(name string) *Node {
	return &Node{kind: KindIdent, text: name}
}

// NewOp creates an operator node owning left and right. Panics if op is not
// one of Operators or if either child is nil.
func NewOp(op byte, left, right *Node) *Node {
	if strings.IndexByte(Operators, op) < 0 {
		panic("exptree: invalid operator " + strconv.QuoteRune(rune(op)))
	}
	if left == nil || right == nil {
		panic("exptree: operator " + string(op) + " with missing operand")
	}
	return &Node{kind: KindSymbol, op: op, left: left, right: right}
}

// Kind returns the node's kind. A nil node has KindNone.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNone
	}
	return n.kind
}

// Text returns the canonical decimal literal of a number node or the name of
// an identifier node. It is empty for operator nodes.
func (n *Node) Text() string {
	return n.text
}

// Op returns the operator of a symbol node, or 0 for leaves.
func (n *Node) Op() byte {
	return n.op
}

// Left returns the left operand of an operator node.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right operand of an operator node.
func (n *Node) Right() *Node {
	return n.right
}

// Release takes the tree apart in post-order, marking every node as KindNone,
// and returns the number of nodes released. Releasing a nil tree does nothing.
// A released tree must not be used again.
func (n *Node) Release() int {
	if n == nil {
		return 0
	}
	k := n.left.Release() + n.right.Release()
	*n = Node{}
	return k + 1
}

// Size returns the number of nodes in the tree.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.Size() + n.right.Size()
}

// Vars returns the sorted distinct identifier names in the tree.
func (n *Node) Vars() []string {
	seen := make(map[string]bool)
	n.vars(seen)
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

func (n *Node) vars(seen map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == KindIdent {
		seen[n.text] = true
		return
	}
	n.left.vars(seen)
	n.right.vars(seen)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// String renders the tree in infix notation with every operation
// parenthesized, e.g. "(1 + (2 * x))". Numbers render as their decimal values.
// A nil tree renders as "".
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.kind {
	case KindNumber, KindIdent:
		b.WriteString(n.text)
	case KindSymbol:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteByte(n.op)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("exptree: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
