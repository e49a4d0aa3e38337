package currency

import "testing"

func TestFormatRupiah(t *testing.T) {
	tests := map[int64]string{
		0:       "Rp0",
		999:     "Rp999",
		1000:    "Rp1.000",
		50000:   "Rp50.000",
		250000:  "Rp250.000",
		1500000: "Rp1.500.000",
		-75000:  "-Rp75.000",
	}
	for in, want := range tests {
		if got := FormatRupiah(in); got != want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", in, got, want)
		}
	}
}
