package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestCompileSnapshots mirrors the teacher's fixture-snapshot harness
// (internal/interp/fixture_test.go): compile a whole program end-to-end and
// snapshot the emitted SVM assembly, so a change to the generated code shows
// up as a diff instead of a silent drift.
func TestCompileSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"hello", `program H; begin writeln('ola') end.`},
		{"sum", `program S; var a,b,s:integer; begin read(a); read(b); s:=a+b; writeln(s) end.`},
		{"for_loop", `program L; var i,n:integer; begin n:=0; for i:=1 to 10 do n:=n+i; writeln(n) end.`},
		{"array", `program A; var v:array[1..3] of integer; i:integer; begin for i:=1 to 3 do v[i]:=i*i; writeln(v[2]) end.`},
		{"function", `program F; function sq(x:integer):integer; begin sq:=x*x end; var y:integer; begin y:=sq(7); writeln(y) end.`},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			out := compile(t, c.src)
			snaps.MatchSnapshot(t, out)
		})
	}
}
