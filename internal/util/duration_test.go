package util

import (
	"testing"
	"time"
)

func TestFormatEscapeTime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{125 * time.Second, "0:02:05"},
		{125*time.Second + 900*time.Millisecond, "0:02:05"}, // truncated, not rounded
		{time.Hour + 61*time.Second, "1:01:01"},
		{10*time.Hour + 5*time.Minute, "10:05:00"},
		{-time.Second, "0:00:00"},
	}

	for _, tc := range cases {
		if got := FormatEscapeTime(tc.d); got != tc.want {
			t.Errorf("FormatEscapeTime(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
