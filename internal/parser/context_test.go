package parser

import (
	"strings"
	"testing"

	"github.com/sblinch/ndf-go/internal/tokenizer"
)

func asStr(tokens []tokenizer.Token) string {
	b := strings.Builder{}
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

func assertTokens(t *testing.T, tokens []tokenizer.Token, expect string) {
	got := asStr(tokens)
	if got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}

func Test_recentTokens(t *testing.T) {
	r := recentTokens{}

	r.Add(tokenizer.Token{ID: tokenizer.Identifier, Data: []byte("A")})
	assertTokens(t, r.Get(), "A")

	r.Add(tokenizer.Token{ID: tokenizer.Identifier, Data: []byte("is")})
	assertTokens(t, r.Get(), "Ais")

	r.Add(tokenizer.Token{ID: tokenizer.Identifier, Data: []byte("Obj")})
	r.Add(tokenizer.Token{ID: tokenizer.ParensOpen, Data: []byte("(")})
	r.Add(tokenizer.Token{ID: tokenizer.Identifier, Data: []byte("x")})
	assertTokens(t, r.Get(), "AisObj(x")

	r.Add(tokenizer.Token{ID: tokenizer.Equals, Data: []byte("=")})
	assertTokens(t, r.Get(), "isObj(x=")

	if got := r.String(); got != "is Obj ( x =" {
		t.Fatalf("expected %q, got %q", "is Obj ( x =", got)
	}
}

func TestParseContextStates(t *testing.T) {
	c, err := newParseContext([]byte("A is 1"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.state() != stateSource {
		t.Fatalf("expected %s, got %s", stateSource, c.state())
	}
	if err := c.pushState(stateArray); err != nil {
		t.Fatal(err)
	}
	if c.state() != stateArray {
		t.Fatalf("expected %s, got %s", stateArray, c.state())
	}
	c.popState()
	if c.state() != stateSource {
		t.Fatalf("expected %s, got %s", stateSource, c.state())
	}

	if tok := c.next(); string(tok.Data) != "A" {
		t.Fatalf("expected A, got %s", tok)
	}
	c.next()
	c.next()
	if c.peek().ID != tokenizer.EOF || c.next().ID != tokenizer.EOF {
		t.Fatal("expected EOF to repeat at the end of input")
	}
}
