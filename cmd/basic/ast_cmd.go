package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/lexer"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		program, err := parser.Parse(context.Background(), string(source), parser.WithFilename(args[0]))
		if err != nil {
			return fmt.Errorf("%s", formatError(err))
		}
		root := nodeToJSON(program)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), root)
		}
		printAST(cmd.OutOrStdout(), root, 0)
		return nil
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the tokens of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tokens, err := lexer.Tokenize(string(source))
		out := cmd.OutOrStdout()
		for _, tok := range tokens {
			pos := tok.StartPosition
			fmt.Fprintf(out, "%d:%d\t%-8s %q\n", pos.LineNumber(), pos.ColumnNumber(), tok.Type, tok.Literal)
		}
		return err
	},
}

func init() {
	astCmd.Flags().Bool("json", false, "Print the tree as JSON")
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

// treeBuilder is an ast.Visitor that appends each visited node to parent.
type treeBuilder struct {
	parent *ASTNode
}

func (b *treeBuilder) Visit(node ast.Node) ast.Visitor {
	child := &ASTNode{Type: reflect.TypeOf(node).Elem().Name(), Value: nodeValue(node)}
	b.parent.Children = append(b.parent.Children, child)
	return &treeBuilder{parent: child}
}

func nodeValue(node ast.Node) any {
	switch n := node.(type) {
	case *ast.Program:
		return nil
	case *ast.Line:
		return n.Number
	case *ast.Number:
		return n.Value
	case *ast.String:
		return n.Value
	case *ast.Ident:
		return n.Name
	case *ast.Prefix:
		return n.Op
	case *ast.Infix:
		return n.Op
	case *ast.Call:
		return n.Name
	case *ast.FnCall:
		return n.Name
	case ast.Stmt:
		return n.String()
	}
	return nil
}

func nodeToJSON(node ast.Node) *ASTNode {
	holder := &ASTNode{}
	ast.Walk(&treeBuilder{parent: holder}, node)
	return holder.Children[0]
}

func printAST(w io.Writer, node *ASTNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.Value != nil {
		fmt.Fprintf(w, "%s%s %v\n", indent, node.Type, node.Value)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, node.Type)
	}
	for _, child := range node.Children {
		printAST(w, child, depth+1)
	}
}
