package utils

import "testing"

func TestDisplayable(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"empty string", "", false},
		{"digits and punctuation only", "1917 !!", false},
		{"plain latin", "The Matrix", true},
		{"accented latin", "Amélie", true},
		{"japanese only", "東京物語", false},
		{"cyrillic only", "Москва", false},
		// 3 Latin letters out of 5 total letters = 0.6, boundary is inclusive
		{"exactly at threshold", "abc東京", true},
		// 2 Latin letters out of 4 total letters = 0.5
		{"below threshold", "ab東京", false},
		// 10 Latin letters out of 17 = 0.588
		{"just below threshold", "Tokyo Story 東京物語日本映", false},
		{"mostly latin with suffix", "Godzilla ゴジラ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Displayable(tt.title); got != tt.want {
				t.Errorf("Displayable(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
