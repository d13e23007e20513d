package schema

import "testing"

func TestStringifyString(t *testing.T) {
	s := String("hello")
	if got := Stringify(s); got != "hello" {
		t.Errorf("expect raw string, got %q", got)
	}
}

func TestStringifyStruct(t *testing.T) {
	in := NewInput("plan a dinner")
	got := Stringify(in)
	want := `{"chat_message":"plan a dinner"}`
	if got != want {
		t.Errorf("expect %s, got %s", want, got)
	}
}

func TestToBytes(t *testing.T) {
	out := NewOutput("done")
	if got := string(ToBytes(out)); got != `{"chat_message":"done"}` {
		t.Errorf("unexpected bytes: %s", got)
	}
}
