package metalsim

import "testing"

func TestParseMetal(t *testing.T) {
	testCases := []struct {
		in        string
		want      Metal
		expectErr bool
	}{
		{"gold", Gold, false},
		{"Gold", Gold, false},
		{"au", Gold, false},
		{"silver", Silver, false},
		{"ag", Silver, false},
		{"platinum", Platinum, false},
		{"pt", Platinum, false},
		{"palladium", Palladium, false},
		{"pd", Palladium, false},
		{"copper", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMetal(tc.in)
			if (err != nil) != tc.expectErr {
				t.Fatalf("ParseMetal(%q) error = %v, want error: %v", tc.in, err, tc.expectErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseMetal(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestUnitConvert(t *testing.T) {
	oz := Q(2)
	g := TroyOunce.Convert(oz, Gram)
	if !g.Equal(Q(62.207)) { // 2 * 31.1035
		t.Errorf("2 oz = %s g, want 62.207", g)
	}
	back := Gram.Convert(g, TroyOunce)
	if !back.Equal(oz) {
		t.Errorf("roundtrip = %s oz, want 2", back)
	}
	same := TroyOunce.Convert(oz, TroyOunce)
	if !same.Equal(oz) {
		t.Errorf("identity conversion = %s, want 2", same)
	}
}
