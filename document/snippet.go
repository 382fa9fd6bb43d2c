package document

import (
	"errors"
	"strings"
	"sync"

	"github.com/sblinch/ndf-go/internal/parser"
	"github.com/sblinch/ndf-go/syntax"
)

var (
	snippetMu     sync.RWMutex
	snippetParser syntax.Parser = parser.New()
)

// SetParser replaces the parser used for NDF snippets passed to containers and rows
func SetParser(p syntax.Parser) {
	snippetMu.Lock()
	defer snippetMu.Unlock()
	snippetParser = p
}

func currentParser() syntax.Parser {
	snippetMu.RLock()
	defer snippetMu.RUnlock()
	return snippetParser
}

// snippet describes how a fragment is wrapped so that it parses as the body of one construct
type snippet struct {
	op     string
	prefix string
	suffix string
	kind   syntax.Kind
}

var (
	rootSnippet   = snippet{op: "root snippet"}
	listSnippet   = snippet{op: "list snippet", prefix: "[\n", suffix: "\n]", kind: syntax.KindArray}
	objectSnippet = snippet{op: "object snippet", prefix: "T(\n", suffix: "\n)", kind: syntax.KindObject}
	paramSnippet  = snippet{op: "parameter snippet", prefix: "template _[\n", suffix: "\n] is T()", kind: syntax.KindTemplate}
	mapSnippet    = snippet{op: "map snippet", prefix: "MAP[\n", suffix: "\n]", kind: syntax.KindMap}
)

// parse returns the node whose children are the rows written in code
func (s snippet) parse(code string) (syntax.Node, error) {
	if strings.TrimSpace(code) == "" {
		return nil, inputError(s.op, nil, "expected ndf code, got empty string")
	}
	root, err := currentParser().Parse([]byte(s.prefix + code + s.suffix))
	if err != nil {
		var se *syntax.Error
		if s.prefix != "" && errors.As(err, &se) {
			shifted := *se
			shifted.Line -= strings.Count(s.prefix, "\n")
			if shifted.Line < 1 {
				shifted.Line = 1
			}
			return nil, &shifted
		}
		return nil, err
	}
	if s.kind == "" {
		return root, nil
	}

	var items []syntax.Node
	for _, n := range root.Children() {
		if n.Kind() != syntax.KindComment {
			items = append(items, n)
		}
	}
	if len(items) != 1 || items[0].Kind() != s.kind {
		return nil, inputError(s.op, nil, "snippet does not form a single %s body", s.kind)
	}
	body := items[0]
	if s.kind == syntax.KindTemplate {
		body = body.Field("params")
		if body == nil {
			return nil, inputError(s.op, nil, "snippet does not form a parameter list")
		}
	}
	return body, nil
}

var snippetBuilder = &Builder{}

func listRowsFromCode(code string, root bool) ([]*ListRow, error) {
	s := listSnippet
	if root {
		s = rootSnippet
	}
	n, err := s.parse(code)
	if err != nil {
		return nil, err
	}
	return buildRows(n, snippetBuilder.listRow)
}

func memberRowsFromCode(code string) ([]*MemberRow, error) {
	n, err := objectSnippet.parse(code)
	if err != nil {
		return nil, err
	}
	return buildRows(n, snippetBuilder.memberRow)
}

func paramRowsFromCode(code string) ([]*ParamRow, error) {
	n, err := paramSnippet.parse(code)
	if err != nil {
		return nil, err
	}
	return buildRows(n, snippetBuilder.paramRow)
}

func mapRowsFromCode(code string) ([]*MapRow, error) {
	n, err := mapSnippet.parse(code)
	if err != nil {
		return nil, err
	}
	return buildRows(n, snippetBuilder.mapRow)
}

func buildRows[R rowType](n syntax.Node, build func(syntax.Node) (R, error)) ([]R, error) {
	var rows []R
	for _, child := range n.Children() {
		if child.Kind() == syntax.KindComment {
			continue
		}
		r, err := build(child)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}
