package aurora

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvert(t *testing.T) {
	for _, tc := range []struct {
		cad    string
		region Region
		want   string
	}{
		{cad: "1", region: NWT, want: "25.0425"},
		{cad: "1", region: BC, want: "26.712"},
		{cad: "100", region: NWT, want: "2504.25"},
		{cad: "abc", region: BC, want: "0"},
		{cad: "", region: NWT, want: "0"},
	} {
		got := Convert(ParseAmount(tc.cad), tc.region)
		if got.Currency() != TWD {
			t.Errorf("Convert(%q, %v) currency = %q", tc.cad, tc.region, got.Currency())
		}
		if want := decimal.RequireFromString(tc.want); !got.Value().Equal(want) {
			t.Errorf("Convert(%q, %v) = %v, want %v", tc.cad, tc.region, got.Value(), want)
		}
	}
}

func TestParseRegion(t *testing.T) {
	if r, err := ParseRegion("bc"); err != nil || r != BC {
		t.Errorf("ParseRegion(bc) = %v, %v", r, err)
	}
	if _, err := ParseRegion("ON"); err == nil {
		t.Error("ParseRegion(ON) should fail")
	}
}

func TestToTWD(t *testing.T) {
	if got := ToTWD(Dollars(120)); !got.Equal(M(decimal.RequireFromString("2862"), TWD)) {
		t.Errorf("ToTWD(120 CAD) = %v", got.Value())
	}
	if got := ToTWD(NTD(500)); !got.Equal(NTD(500)) {
		t.Errorf("ToTWD(500 TWD) = %v", got.Value())
	}
}
