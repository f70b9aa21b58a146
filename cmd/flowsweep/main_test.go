package main

import "testing"

func TestParseFloats(t *testing.T) {
	got, err := parseFloats(" 0.5, 2 ,,16")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 0.5 || got[1] != 2 || got[2] != 16 {
		t.Fatalf("parseFloats = %v", got)
	}
	for _, bad := range []string{"", "a", "1,-2", "0"} {
		if _, err := parseFloats(bad); err == nil {
			t.Fatalf("parseFloats(%q) should fail", bad)
		}
	}
}
