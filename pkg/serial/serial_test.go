package serial

import (
	"errors"
	"fmt"
	"testing"
)

func TestSpaceValidate(t *testing.T) {
	tests := []struct {
		name    string
		space   Space
		wantErr error
	}{
		{"minimal", Space{X: 1, Y: 1}, nil},
		{"typical", Space{X: 4, Y: 3, Seed: 42}, nil},
		{"max shims", Space{X: 26, Y: 1}, nil},
		{"largest legal space", Space{X: 26, Y: 11}, nil},
		{"max seed", Space{X: 2, Y: 1, Seed: MaxSeed}, nil},
		{"zero shims", Space{X: 0, Y: 1}, ErrBadShims},
		{"too many shims", Space{X: 27, Y: 1}, ErrBadShims},
		{"zero slots", Space{X: 2, Y: 0}, ErrBadSlots},
		{"seed too large", Space{X: 2, Y: 1, Seed: MaxSeed + 1}, ErrBadSeed},
		{"space too large", Space{X: 26, Y: 12}, ErrSpaceTooLarge},
		{"deep space too large", Space{X: 2, Y: 64}, ErrSpaceTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.space.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpaceSize(t *testing.T) {
	tests := []struct {
		name  string
		space Space
		want  uint64
	}{
		{"x=1 collapses to signs", Space{X: 1, Y: 5}, 2},
		{"x=2 y=1", Space{X: 2, Y: 1}, 4},
		{"x=4 y=3", Space{X: 4, Y: 3}, 128},
		{"x=26 y=2", Space{X: 26, Y: 2}, 1352},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.space.Size()
			if err != nil {
				t.Fatalf("Size() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpaceIncrement(t *testing.T) {
	tests := []struct {
		name string
		seed uint64
		want uint64
	}{
		{"seed 0 is smallest prime", 0, 29},
		{"single digit", 9, 67},
		{"ten keeps trailing zero digit", 10, 31 * 29},
		{"two digits", 17, 59 * 31},
		{"repeated digits", 777, 53 * 53 * 53},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Space{X: 2, Y: 1, Seed: tt.seed}
			if got := s.Increment(); got != tt.want {
				t.Errorf("Increment() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestSpaceAtScenario pins the exact enumeration of the 4-element space
// x=2, y=1, seed=0: c=29, a=5, m=4. The residues 1,2,3,0 split into the
// lower (sign '-') and upper (sign '+') halves at xʸ=2.
func TestSpaceAtScenario(t *testing.T) {
	s := Space{X: 2, Y: 1, Seed: 0}
	want := []Number{"-B", "+A", "+B", "-A"}
	for i, w := range want {
		got, err := s.At(uint64(i))
		if err != nil {
			t.Fatalf("At(%d) error = %v", i, err)
		}
		if got != w {
			t.Errorf("At(%d) = %q, want %q", i, got, w)
		}
	}
	if _, err := s.At(4); !errors.Is(err, ErrBadIndex) {
		t.Errorf("At(4) error = %v, want %v", err, ErrBadIndex)
	}
}

// TestSpaceFullPeriod verifies the bijection contract: walking all of
// [0, size) yields every serial number exactly once, for a spread of
// shapes and seeds.
func TestSpaceFullPeriod(t *testing.T) {
	spaces := []Space{
		{X: 2, Y: 1, Seed: 0},
		{X: 2, Y: 8, Seed: 1},
		{X: 3, Y: 4, Seed: 47},
		{X: 5, Y: 3, Seed: 12345},
		{X: 12, Y: 2, Seed: 99999999},
		{X: 25, Y: 2, Seed: 31337},
	}
	for _, s := range spaces {
		t.Run(fmt.Sprintf("x=%d,y=%d,seed=%d", s.X, s.Y, s.Seed), func(t *testing.T) {
			size, err := s.Size()
			if err != nil {
				t.Fatalf("Size() error = %v", err)
			}
			seen := make(map[Number]uint64, size)
			for i := uint64(0); i < size; i++ {
				n, err := s.At(i)
				if err != nil {
					t.Fatalf("At(%d) error = %v", i, err)
				}
				if !n.Valid() {
					t.Fatalf("At(%d) = %q, not a valid serial number", i, n)
				}
				if prev, dup := seen[n]; dup {
					t.Fatalf("At(%d) repeats %q from index %d", i, n, prev)
				}
				seen[n] = i
			}
			if uint64(len(seen)) != size {
				t.Errorf("distinct serials = %d, want %d", len(seen), size)
			}
		})
	}
}

func TestSpaceRoundTrip(t *testing.T) {
	spaces := []Space{
		{X: 2, Y: 1, Seed: 0},
		{X: 4, Y: 3, Seed: 42},
		{X: 26, Y: 2, Seed: 7},
	}
	for _, s := range spaces {
		size, err := s.Size()
		if err != nil {
			t.Fatalf("Size() error = %v", err)
		}
		for i := uint64(0); i < size; i++ {
			n, err := s.At(i)
			if err != nil {
				t.Fatalf("At(%d) error = %v", i, err)
			}
			back, err := s.IndexOf(n)
			if err != nil {
				t.Fatalf("IndexOf(%q) error = %v", n, err)
			}
			if back != i {
				t.Errorf("IndexOf(At(%d)) = %d, want %d", i, back, i)
			}
		}
	}
}

func TestSpaceDecodeEncode(t *testing.T) {
	s := Space{X: 4, Y: 3}
	tests := []struct {
		name    string
		residue uint64
		want    Number
	}{
		{"lower half zero", 0, "-AAA"},
		{"least significant first", 1, "-BAA"},
		{"base-x carry", 4, "-ABA"},
		{"lower half top", 63, "-DDD"},
		{"sign boundary", 64, "+AAA"},
		{"upper half", 64 + 2 + 3*4 + 1*16, "+CDB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Decode(tt.residue)
			if err != nil {
				t.Fatalf("Decode(%d) error = %v", tt.residue, err)
			}
			if got != tt.want {
				t.Errorf("Decode(%d) = %q, want %q", tt.residue, got, tt.want)
			}
			back, err := s.Encode(got)
			if err != nil {
				t.Fatalf("Encode(%q) error = %v", got, err)
			}
			if back != tt.residue {
				t.Errorf("Encode(Decode(%d)) = %d, want %d", tt.residue, back, tt.residue)
			}
		})
	}
}

func TestSpaceEncodeRejects(t *testing.T) {
	s := Space{X: 4, Y: 3}
	tests := []struct {
		name string
		n    Number
	}{
		{"empty", ""},
		{"sign only", "+"},
		{"missing sign", "AAA"},
		{"wrong slot count", "+AA"},
		{"letter beyond x", "+AEA"},
		{"lowercase", "+aaa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Encode(tt.n); !errors.Is(err, ErrBadSerial) {
				t.Errorf("Encode(%q) error = %v, want %v", tt.n, err, ErrBadSerial)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Number
		wantErr bool
	}{
		{"simple", "+A", "+A", false},
		{"negative", "-CB", "-CB", false},
		{"surrounding space", "  +ZZ\n", "+ZZ", false},
		{"empty", "", "", true},
		{"sign only", "-", "", true},
		{"digit slot", "+A1", "", true},
		{"no sign", "AB", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNumberCounts(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		want []int
	}{
		{"single slot", "+A", []int{1}},
		{"mixed", "-CBZ", []int{3, 2, 26}},
		{"malformed", "C", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.n.Counts()
			if len(got) != len(tt.want) {
				t.Fatalf("Counts() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Counts()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}
