package diag

import "testing"

type aRanger struct {
	Ranging
}

func TestEmbeddingRangingImplementsRanger(t *testing.T) {
	r := PointRanging(1, 10)
	s := Ranger(aRanger{PointRanging(1, 10)})
	if s.Range() != r {
		t.Errorf("s.Range() = %v, want %v", s.Range(), r)
	}
}

func TestRangingString(t *testing.T) {
	tests := []struct {
		r    Ranging
		want string
	}{
		{PointRanging(3, 4), "3:4"},
		{Ranging{Position{1, 2}, Position{1, 9}}, "1:2-1:9"},
	}
	for _, test := range tests {
		if got := test.r.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.r, got, test.want)
		}
	}
}

func TestMixedRanging(t *testing.T) {
	a := Ranging{Position{1, 1}, Position{1, 3}}
	b := Ranging{Position{2, 5}, Position{2, 8}}
	want := Ranging{Position{1, 1}, Position{2, 8}}
	if got := MixedRanging(a, b); got != want {
		t.Errorf("MixedRanging -> %v, want %v", got, want)
	}
	if !(Ranging{}).IsZero() || a.IsZero() {
		t.Errorf("IsZero gives wrong answers")
	}
}
