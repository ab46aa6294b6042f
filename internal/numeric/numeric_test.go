package numeric

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("Clamp(-1,0,10) = %d", got)
	}
	if got := Clamp(20, 0, 10); got != 10 {
		t.Fatalf("Clamp(20,0,10) = %d", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 {
		t.Fatal("Min(3,7) != 3")
	}
	if Max(3, 7) != 7 {
		t.Fatal("Max(3,7) != 7")
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ num, den, want uint32 }{
		{8, 8, 1},
		{9, 8, 2},
		{1, 8, 1},
		{0, 8, 0},
	}
	for _, c := range cases {
		if got := CeilDiv(c.num, c.den); got != c.want {
			t.Errorf("CeilDiv(%d,%d) = %d, want %d", c.num, c.den, got, c.want)
		}
	}
}
