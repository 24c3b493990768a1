package render

import (
	"bytes"
	"testing"
)

func TestCanvasAppendPads(t *testing.T) {
	c := NewCanvas(3, []string{"aaa", "bbb"})
	c.Append(4, "x")

	if c.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", c.Len())
	}
	if c.Row(2) != "   " {
		t.Errorf("padding row = %q, want three spaces", c.Row(2))
	}
	if c.Row(4) != "   x" {
		t.Errorf("row 4 = %q", c.Row(4))
	}

	c.Append(0, "!")
	if c.Row(0) != "aaa!" {
		t.Errorf("row 0 = %q", c.Row(0))
	}
	c.Append(-1, "ignored")
	if c.Len() != 5 {
		t.Error("negative rows must be ignored")
	}
}

func TestCanvasWriteTo(t *testing.T) {
	c := NewCanvas(1, []string{"a", "b"})
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a\nb\n" {
		t.Errorf("WriteTo() = %q", buf.String())
	}
	if NewCanvas(1, nil).String() != "" {
		t.Error("empty canvas should render as empty string")
	}
}

func TestCanvasRowsIsCopy(t *testing.T) {
	c := NewCanvas(1, []string{"a"})
	rows := c.Rows()
	rows[0] = "z"
	if c.Row(0) != "a" {
		t.Error("Rows() must return a copy")
	}
}
