package scaffold

import (
	"reflect"
	"testing"
)

func TestFileTree_LastWriteWinsKeepsPosition(t *testing.T) {
	tree := NewFileTree()
	tree.Set("a.txt", "1")
	tree.Set("b.txt", "2")
	tree.Set("a.txt", "3")

	if got := tree.Paths(); !reflect.DeepEqual(got, []string{"a.txt", "b.txt"}) {
		t.Errorf("Paths() = %v", got)
	}
	if c, _ := tree.Get("a.txt"); c != "3" {
		t.Errorf("Get(a.txt) = %q, want %q", c, "3")
	}
	if tree.Len() != 2 || tree.Size() != 2 {
		t.Errorf("Len() = %d, Size() = %d", tree.Len(), tree.Size())
	}
}

func TestFileTree_CloneIsIndependent(t *testing.T) {
	tree := NewFileTree()
	tree.Set("a.txt", "1")

	c := tree.Clone()
	c.Set("a.txt", "changed")
	c.Set("b.txt", "new")

	if got, _ := tree.Get("a.txt"); got != "1" {
		t.Errorf("original modified: %q", got)
	}
	if tree.Has("b.txt") {
		t.Error("original gained b.txt")
	}
	if tree.Equal(c) {
		t.Error("Equal() = true for diverged trees")
	}
}

func TestFileTree_EqualIsOrderSensitive(t *testing.T) {
	a, b := NewFileTree(), NewFileTree()
	a.Set("x", "1")
	a.Set("y", "2")
	b.Set("y", "2")
	b.Set("x", "1")
	if a.Equal(b) {
		t.Error("Equal() should compare insertion order")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"package.json", false},
		{"src/routes/auth.js", false},
		{".husky/pre-commit", false},
		{"", true},
		{"/etc/passwd", true},
		{"../escape.js", true},
		{"src/../../x", true},
		{"src//index.js", true},
		{"src/", true},
		{`src\index.js`, true},
		{"./src/index.js", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if err := ValidatePath(tt.path); (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestPairs(t *testing.T) {
	var ps Pairs
	ps = ps.Set("start", "node a").Set("dev", "nodemon a").Set("start", "node b")

	if v, _ := ps.Get("start"); v != "node b" {
		t.Errorf("start = %q", v)
	}
	if ps[0].Key != "start" || ps[1].Key != "dev" {
		t.Errorf("order = %v", ps)
	}

	data, err := ps.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `{"start":"node b","dev":"nodemon a"}` {
		t.Errorf("MarshalJSON() = %s", data)
	}

	sorted := Pairs{{"b", "1"}, {"a", "2"}}.Sorted()
	if sorted[0].Key != "a" {
		t.Errorf("Sorted() = %v", sorted)
	}
}

func TestPairs_SetDoesNotAlias(t *testing.T) {
	base := Pairs{{"a", "1"}, {"b", "2"}}
	_ = base.Set("a", "changed")
	if base[0].Value != "1" {
		t.Error("Set() modified the receiver")
	}
}
