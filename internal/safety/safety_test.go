package safety

import "testing"

func TestIsCrisis(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"aku pengen mati", true},
		{"AKU PENGEN MATI", true},
		{"akhir-akhir ini kepikiran bunuh diri", true},
		{"I think about suicide sometimes", true},
		{"temenku cerita soal Self-Harm", true},
		{"capek banget sama kerjaan", false},
		{"hari ini hujan deras", false},
		{"", false},
		{"mati lampu lagi di rumah", false},
	}

	for _, c := range cases {
		if got := IsCrisis(c.text); got != c.want {
			t.Errorf("IsCrisis(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
