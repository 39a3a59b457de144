package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, line := range n.Lines() {
			Walk(v, line)
		}
	case *Line:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}

	// Statements
	case *Let:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *Print:
		for _, item := range n.Items {
			if item.Expr != nil {
				Walk(v, item.Expr)
			}
		}
	case *Input:
		if n.Prompt != nil {
			Walk(v, n.Prompt)
		}
		walkExprs(v, n.Vars)
	case *Get:
		Walk(v, n.Var)
	case *If:
		Walk(v, n.Cond)
	case *On:
		Walk(v, n.X)
	case *For:
		Walk(v, n.Var)
		Walk(v, n.Start)
		Walk(v, n.Limit)
		if n.Step != nil {
			Walk(v, n.Step)
		}
	case *Next:
		for _, ident := range n.Vars {
			Walk(v, ident)
		}
	case *Dim:
		for _, arr := range n.Arrays {
			Walk(v, arr)
		}
	case *Read:
		walkExprs(v, n.Vars)
	case *Tab:
		Walk(v, n.X)
	case *DefFn:
		Walk(v, n.Param)
		Walk(v, n.Body)
	case *Poke:
		Walk(v, n.Addr)
		Walk(v, n.Value)
	case *CallStmt:
		Walk(v, n.Addr)
	case *Goto, *Gosub, *Data, *Restore, *Rem, *Keyword:
		// No children

	// Expressions
	case *Number, *String, *Ident:
		// No children
	case *Index:
		Walk(v, n.Name)
		walkExprs(v, n.Indexes)
	case *Prefix:
		Walk(v, n.X)
	case *Infix:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *Paren:
		Walk(v, n.X)
	case *Call:
		walkExprs(v, n.Args)
	case *FnCall:
		Walk(v, n.Arg)
	case *PrintFunc:
		Walk(v, n.X)
	}
}

func walkExprs(v Visitor, exprs []Expr) {
	for _, e := range exprs {
		Walk(v, e)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		Inspect(root, func(n Node) bool {
			ok = ok && yield(n)
			return ok
		})
	}
}
