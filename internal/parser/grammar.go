package parser

import (
	"github.com/sblinch/ndf-go/internal/tokenizer"
	"github.com/sblinch/ndf-go/syntax"
)

var visibilityKeywords = map[string]bool{
	"export":  true,
	"private": true,
	"public":  true,
	"unnamed": true,
}

var keywordOperators = map[string]bool{
	"div": true,
	"and": true,
	"or":  true,
}

// parseSource parses every top-level item up to the end of the input
func (c *ParseContext) parseSource() (*syntax.Element, error) {
	root := syntax.NewElement(syntax.KindSource, string(c.src), syntax.Span{Start: 0, End: len(c.src), Line: 1, Column: 1})
	if err := c.pushState(stateSource); err != nil {
		return nil, err
	}
	defer c.popState()

	for c.peek().ID != tokenizer.EOF {
		item, err := c.parseItem(true)
		if err != nil {
			return nil, err
		}
		root.AddChild(item)
	}
	return root, nil
}

// startsItem returns true if t can begin an item
func startsItem(t tokenizer.Token) bool {
	switch t.ID {
	case tokenizer.Identifier, tokenizer.ParensOpen, tokenizer.BracketOpen:
		return !isKeyword(t, "is")
	case tokenizer.Operator:
		return isUnaryOperator(t) || isOperator(t, "<")
	default:
		return t.ID.Is(tokenizer.ClassLiteral)
	}
}

// parseItem parses `[visibility] template ...`, `[visibility] Name is value` or `[visibility] value`
func (c *ParseContext) parseItem(allowTemplate bool) (syntax.Node, error) {
	first := c.peek()
	if first.ID == tokenizer.Identifier && visibilityKeywords[string(first.Data)] && startsItem(c.peekAt(1)) {
		vis := c.next()
		item, err := c.parseBareItem(allowTemplate)
		if err != nil {
			return nil, err
		}
		el := c.element(syntax.KindVisibility, first)
		el.SetField("type", name(vis))
		el.SetField("item", item)
		return el, nil
	}
	return c.parseBareItem(allowTemplate)
}

func (c *ParseContext) parseBareItem(allowTemplate bool) (syntax.Node, error) {
	first := c.peek()
	if isKeyword(first, "template") && c.peekAt(1).ID == tokenizer.Identifier && !isKeyword(c.peekAt(1), "is") {
		if !allowTemplate {
			return nil, c.errorf(first, "template declarations are only allowed at the top level")
		}
		return c.parseTemplate()
	}

	if first.ID == tokenizer.Identifier && isKeyword(c.peekAt(1), "is") {
		nameTok := c.next()
		c.next()
		value, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		el := c.element(syntax.KindAssignment, first)
		el.SetField("name", name(nameTok))
		el.SetField("value", value)
		return el, nil
	}

	return c.parseExpression()
}

// parseTemplate parses `template Name [params] is Type(members)`
func (c *ParseContext) parseTemplate() (syntax.Node, error) {
	first := c.next()
	if err := c.pushState(stateTemplate); err != nil {
		return nil, err
	}
	defer c.popState()

	nameTok, err := c.expect(tokenizer.Identifier, "template name")
	if err != nil {
		return nil, err
	}

	var params syntax.Node
	if c.peek().ID == tokenizer.BracketOpen {
		if params, err = c.parseParams(); err != nil {
			return nil, err
		}
	}

	if _, err := c.expectKeyword("is"); err != nil {
		return nil, err
	}

	if c.peek().ID != tokenizer.Identifier || c.peekAt(1).ID != tokenizer.ParensOpen {
		return nil, c.errorf(c.peek(), "expected object after template declaration, found %s", describe(c.peek()))
	}
	obj, err := c.parseObject()
	if err != nil {
		return nil, err
	}

	el := c.element(syntax.KindTemplate, first)
	el.SetField("name", name(nameTok))
	el.SetField("params", params)
	el.SetField("value", obj)
	return el, nil
}

// parseParams parses a bracketed template parameter list; separating commas are optional
func (c *ParseContext) parseParams() (syntax.Node, error) {
	first := c.next()
	if err := c.pushState(stateParams); err != nil {
		return nil, err
	}
	defer c.popState()

	var children []syntax.Node
	for c.peek().ID != tokenizer.BracketClose {
		if c.peek().ID == tokenizer.EOF {
			return nil, c.errorf(c.peek(), "expected ], found %s", describe(c.peek()))
		}
		p, err := c.parseParam()
		if err != nil {
			return nil, err
		}
		children = append(children, p)
		if c.peek().ID == tokenizer.Comma {
			c.next()
		}
	}
	c.next()

	el := c.element(syntax.KindParams, first)
	for _, p := range children {
		el.AddChild(p)
	}
	return el, nil
}

// parseParam parses `name [: type] [= value]`
func (c *ParseContext) parseParam() (syntax.Node, error) {
	first, err := c.expect(tokenizer.Identifier, "parameter name")
	if err != nil {
		return nil, err
	}

	var typ, value syntax.Node
	if c.peek().ID == tokenizer.Colon {
		c.next()
		if typ, err = c.parseType(); err != nil {
			return nil, err
		}
	}
	if c.peek().ID == tokenizer.Equals {
		c.next()
		if value, err = c.parseExpression(); err != nil {
			return nil, err
		}
	}

	el := c.element(syntax.KindParam, first)
	el.SetField("name", name(first))
	el.SetField("type", typ)
	el.SetField("value", value)
	return el, nil
}

// parseType parses a type name with an optional balanced <...> suffix
func (c *ParseContext) parseType() (syntax.Node, error) {
	first, err := c.expect(tokenizer.Identifier, "type name")
	if err != nil {
		return nil, err
	}
	if isOperator(c.peek(), "<") {
		depth := 0
		for {
			t := c.next()
			switch {
			case t.ID == tokenizer.EOF:
				return nil, c.errorf(t, "unterminated type arguments")
			case isOperator(t, "<"):
				depth++
			case isOperator(t, ">"):
				depth--
			}
			if depth == 0 {
				break
			}
		}
	}
	return c.element(syntax.KindName, first), nil
}

// parseObject parses `Type(members)`; the current token is the type identifier
func (c *ParseContext) parseObject() (syntax.Node, error) {
	first := c.next()
	c.next()
	if err := c.pushState(stateObject); err != nil {
		return nil, err
	}
	defer c.popState()

	var members []syntax.Node
	for c.peek().ID != tokenizer.ParensClose {
		if c.peek().ID == tokenizer.EOF {
			return nil, c.errorf(c.peek(), "expected ), found %s", describe(c.peek()))
		}
		m, err := c.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if c.peek().ID == tokenizer.Comma {
			c.next()
		}
	}
	c.next()

	el := c.element(syntax.KindObject, first)
	el.SetField("type", name(first))
	for _, m := range members {
		el.AddChild(m)
	}
	return el, nil
}

// parseMember parses `name [: type] = item` or a bare item
func (c *ParseContext) parseMember() (syntax.Node, error) {
	first := c.peek()

	var nameNode, typ syntax.Node
	if first.ID == tokenizer.Identifier && (c.peekAt(1).ID == tokenizer.Colon || c.peekAt(1).ID == tokenizer.Equals) {
		nameNode = name(c.next())
		if c.peek().ID == tokenizer.Colon {
			c.next()
			var err error
			if typ, err = c.parseType(); err != nil {
				return nil, err
			}
		}
		if _, err := c.expect(tokenizer.Equals, "="); err != nil {
			return nil, err
		}
	}

	value, err := c.parseItem(false)
	if err != nil {
		return nil, err
	}

	el := c.element(syntax.KindMember, first)
	el.SetField("name", nameNode)
	el.SetField("type", typ)
	el.SetField("value", value)
	return el, nil
}

// parseArray parses `[items]`, preceded by a type identifier if typed is true
func (c *ParseContext) parseArray(typed bool) (syntax.Node, error) {
	first := c.peek()
	var typ syntax.Node
	if typed {
		typ = name(c.next())
	}
	c.next()
	if err := c.pushState(stateArray); err != nil {
		return nil, err
	}
	defer c.popState()

	var items []syntax.Node
	for c.peek().ID != tokenizer.BracketClose {
		item, err := c.parseItem(false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if c.peek().ID == tokenizer.Comma {
			c.next()
		} else if c.peek().ID != tokenizer.BracketClose {
			return nil, c.errorf(c.peek(), "expected , or ], found %s", describe(c.peek()))
		}
	}
	c.next()

	el := c.element(syntax.KindArray, first)
	el.SetField("type", typ)
	for _, item := range items {
		el.AddChild(item)
	}
	return el, nil
}

// parseMap parses `MAP[(k, v), ...]`; the current token is MAP
func (c *ParseContext) parseMap() (syntax.Node, error) {
	first := c.next()
	c.next()
	if err := c.pushState(stateMap); err != nil {
		return nil, err
	}
	defer c.popState()

	var pairs []syntax.Node
	for c.peek().ID != tokenizer.BracketClose {
		if c.peek().ID != tokenizer.ParensOpen {
			return nil, c.errorf(c.peek(), "expected (key, value) pair, found %s", describe(c.peek()))
		}
		p, err := c.parseParenthesized()
		if err != nil {
			return nil, err
		}
		if p == nil || p.Kind() != syntax.KindPair {
			return nil, c.errorf(c.last, "expected (key, value) pair")
		}
		pairs = append(pairs, p)
		if c.peek().ID == tokenizer.Comma {
			c.next()
		} else if c.peek().ID != tokenizer.BracketClose {
			return nil, c.errorf(c.peek(), "expected , or ], found %s", describe(c.peek()))
		}
	}
	c.next()

	el := c.element(syntax.KindMap, first)
	for _, p := range pairs {
		el.AddChild(p)
	}
	return el, nil
}

// parseParenthesized parses `(left, right)` into a pair, or `(expr)` as part of a literal, in which case it returns nil
func (c *ParseContext) parseParenthesized() (syntax.Node, error) {
	first := c.next()
	if err := c.pushState(statePair); err != nil {
		return nil, err
	}
	defer c.popState()

	left, err := c.parseExpression()
	if err != nil {
		return nil, err
	}
	if c.peek().ID != tokenizer.Comma {
		if _, err := c.expect(tokenizer.ParensClose, ")"); err != nil {
			return nil, err
		}
		return nil, nil
	}
	c.next()

	right, err := c.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(tokenizer.ParensClose, ")"); err != nil {
		return nil, err
	}

	el := c.element(syntax.KindPair, first)
	el.SetField("left", left)
	el.SetField("right", right)
	return el, nil
}

// parseExpression parses `operand (operator operand)*`. A lone structured operand is returned as-is; anything else
// becomes a literal spanning the expression's exact source text.
func (c *ParseContext) parseExpression() (syntax.Node, error) {
	first := c.peek()
	if err := c.pushState(stateExpression); err != nil {
		return nil, err
	}
	defer c.popState()

	structured, err := c.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := 1
	for isBinaryOperator(c.peek()) {
		c.next()
		if _, err := c.parseUnary(); err != nil {
			return nil, err
		}
		operands++
	}

	if operands == 1 && structured != nil {
		return structured, nil
	}
	return c.element(syntax.KindLiteral, first), nil
}

func (c *ParseContext) parseUnary() (syntax.Node, error) {
	t := c.peek()
	if isUnaryOperator(t) || isKeyword(t, "not") {
		c.next()
		if _, err := c.parseUnary(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return c.parseOperand()
}

// parseOperand parses a single operand, returning the node for structured operands and nil for plain literals
func (c *ParseContext) parseOperand() (syntax.Node, error) {
	t := c.peek()
	switch {
	case t.ID.Is(tokenizer.ClassLiteral):
		c.next()
		return nil, nil

	case t.ID == tokenizer.Identifier:
		switch next := c.peekAt(1); {
		case isKeyword(t, "is") || isKeyword(t, "template"):
			return nil, c.errorf(t, "unexpected keyword %q", t.Data)
		case isKeyword(t, "MAP") && next.ID == tokenizer.BracketOpen:
			return c.parseMap()
		case next.ID == tokenizer.ParensOpen:
			return c.parseObject()
		case next.ID == tokenizer.BracketOpen:
			return c.parseArray(true)
		}
		c.next()
		return nil, nil

	case isOperator(t, "<") && c.peekAt(1).ID == tokenizer.Identifier && isOperator(c.peekAt(2), ">"):
		// <Param> refers to a template parameter
		c.next()
		c.next()
		c.next()
		return nil, nil

	case t.ID == tokenizer.BracketOpen:
		return c.parseArray(false)

	case t.ID == tokenizer.ParensOpen:
		return c.parseParenthesized()

	default:
		return nil, c.errorf(t, "unexpected %s", describe(t))
	}
}

func isOperator(t tokenizer.Token, op string) bool {
	return t.ID == tokenizer.Operator && string(t.Data) == op
}

func isUnaryOperator(t tokenizer.Token) bool {
	return isOperator(t, "-") || isOperator(t, "+") || isOperator(t, "!")
}

func isBinaryOperator(t tokenizer.Token) bool {
	if t.ID == tokenizer.Operator {
		return !isOperator(t, "!")
	}
	return t.ID == tokenizer.Identifier && keywordOperators[string(t.Data)]
}
