package token

import "testing"

func TestDeclTokenIsBlockScoped(t *testing.T) {
	cases := []struct {
		tok  DeclToken
		want bool
	}{
		{VAR, false},
		{LET, true},
		{CONST, true},
		{ILLEGAL, false},
	}
	for _, c := range cases {
		if got := c.tok.IsBlockScoped(); got != c.want {
			t.Errorf("%s.IsBlockScoped() = %v, want %v", c.tok, got, c.want)
		}
	}
}

func TestLoopKindIsCStyle(t *testing.T) {
	cases := []struct {
		kind LoopKind
		want bool
	}{
		{LoopFor, true},
		{LoopWhile, false},
		{LoopDoWhile, false},
		{LoopForIn, false},
	}
	for _, c := range cases {
		if got := c.kind.IsCStyle(); got != c.want {
			t.Errorf("%s.IsCStyle() = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestPosIsValid(t *testing.T) {
	if NoPos.IsValid() {
		t.Error("NoPos must not be valid")
	}
	if !Pos(1).IsValid() {
		t.Error("Pos(1) must be valid")
	}
}

func TestFileSetPosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("a.js", 20)
	f.AddLine(10)
	pos := f.base + 12
	got := fs.Position(pos)
	if got.Filename != "a.js" || got.Line != 2 {
		t.Errorf("Position(%d) = %+v, want line 2 in a.js", pos, got)
	}
}
