package main

import (
	"testing"

	"github.com/tzres-go/tzres/civil"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want civil.DateTime
	}{
		{"2013-06-15T12:00:00", civil.AddSeconds(civil.EncodeDate(2013, 6, 15), 12*3600)},
		{"2013-06-15T12:00", civil.AddSeconds(civil.EncodeDate(2013, 6, 15), 12*3600)},
		{"2013-06-15 03:30:00", civil.AddSeconds(civil.EncodeDate(2013, 6, 15), 3*3600+30*60)},
	}
	for _, tt := range tests {
		got, err := parseDateTime(tt.in)
		if err != nil {
			t.Fatalf("parseDateTime(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseDateTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateTimeRejectsMalformed(t *testing.T) {
	for _, in := range []string{"not-a-date", "2013-06-15", "2013-06-15T25"} {
		if _, err := parseDateTime(in); err == nil {
			t.Errorf("parseDateTime(%q) = nil error, want an error", in)
		}
	}
}
