package models

import "testing"

func TestParseSide(t *testing.T) {
	cases := []struct {
		raw  string
		want ExecutionSide
		ok   bool
	}{
		{"buy", SideBuy, true},
		{" SELL ", SideSell, true},
		{"hold", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseSide(tc.raw)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseSide(%q)=%q,%v want=%q", tc.raw, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseSide(%q) accepted", tc.raw)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("pending"); err == nil {
		t.Fatalf("unknown status accepted")
	}
	got, err := ParseStatus("Closed")
	if err != nil || got != StatusClosed {
		t.Fatalf("ParseStatus(Closed)=%q,%v", got, err)
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("unknown direction accepted")
	}
	got, err := ParseDirection("short")
	if err != nil || got != DirectionShort {
		t.Fatalf("ParseDirection(short)=%q,%v", got, err)
	}
}

func TestParseAssetType(t *testing.T) {
	if _, err := ParseAssetType("bond"); err == nil {
		t.Fatalf("unknown asset type accepted")
	}
	got, err := ParseAssetType("FX")
	if err != nil || got != AssetFX {
		t.Fatalf("ParseAssetType(FX)=%q,%v", got, err)
	}
}
