package eval

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFloatMarshalJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, `1.5`},
		{0, `0`},
		{-2e-10, `-2e-10`},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(Float(tt.in))
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFloatInStruct(t *testing.T) {
	v := struct {
		A Float `json:"a"`
		B Float `json:"b"`
	}{Float(math.NaN()), 3}

	got, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"a":"NaN","b":3}`; string(got) != want {
		t.Fatalf("Marshal = %s, want %s", got, want)
	}
}

func TestFloatUnmarshalJSON(t *testing.T) {
	for _, in := range []string{`1.25`, `"NaN"`, `"+Inf"`, `"-Inf"`} {
		var f Float
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		back, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", f, err)
		}
		if string(back) != in {
			t.Errorf("round trip of %s = %s", in, back)
		}
	}

	var f Float
	if err := json.Unmarshal([]byte(`"fast"`), &f); err == nil {
		t.Fatal("Unmarshal accepted a non-numeric string")
	}
}
