package tscheck

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/wippyai/abigen/errors"
)

// MaxReported caps the syntax errors collected from one unit.
const MaxReported = 20

const exportQuery = `
(export_statement
  declaration: [
    (class_declaration name: (type_identifier) @name)
    (function_declaration name: (identifier) @name)
    (interface_declaration name: (type_identifier) @name)
    (type_alias_declaration name: (type_identifier) @name)
    (lexical_declaration (variable_declarator name: (identifier) @name))
  ])
`

var (
	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
)

func exports() (*sitter.Query, error) {
	queryOnce.Do(func() {
		query, queryErr = sitter.NewQuery([]byte(exportQuery), typescript.GetLanguage())
		if queryErr != nil {
			queryErr = fmt.Errorf("compiling export query: %w", queryErr)
		}
	})
	return query, queryErr
}

// Report is the outcome of checking one unit.
type Report struct {
	// Errors holds ERROR and MISSING nodes as syntax errors, in source order.
	Errors []*errors.Error
	// Exports lists the top-level exported names, sorted.
	Exports []string
}

// OK reports whether the unit parsed cleanly.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Check parses source as TypeScript. A parser is created per call, so Check
// is safe for concurrent use.
func Check(ctx context.Context, source []byte) (*Report, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidInput, err, "parse TypeScript")
	}
	defer tree.Close()

	root := tree.RootNode()
	rep := &Report{}
	if root.HasError() {
		collect(root, source, rep)
	}

	q, err := exports()
	if err != nil {
		return nil, err
	}
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	seen := make(map[string]struct{})
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			seen[c.Node.Content(source)] = struct{}{}
		}
	}
	for name := range seen {
		rep.Exports = append(rep.Exports, name)
	}
	sort.Strings(rep.Exports)
	return rep, nil
}

func collect(n *sitter.Node, source []byte, rep *Report) {
	if len(rep.Errors) >= MaxReported {
		return
	}
	if n.IsMissing() {
		p := n.StartPoint()
		rep.Errors = append(rep.Errors, errors.Syntax(int(p.Row)+1, int(p.Column)+1, "missing "+n.Type()))
		return
	}
	if n.IsError() {
		p := n.StartPoint()
		rep.Errors = append(rep.Errors, errors.Syntax(int(p.Row)+1, int(p.Column)+1, "unexpected "+excerpt(n.Content(source))))
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collect(n.Child(i), source, rep)
	}
}

func excerpt(s string) string {
	const max = 40
	if len(s) > max {
		s = s[:max] + "..."
	}
	return fmt.Sprintf("%q", s)
}
