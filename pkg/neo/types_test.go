package neo

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			"truncates to minutes",
			time.Date(2020, 1, 1, 0, 0, 59, 999, time.UTC),
			"2020-01-01 00:00",
		},
		{
			"renders in UTC",
			time.Date(2020, 6, 15, 3, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
			"2020-06-15 01:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.time); got != tt.want {
				t.Errorf("FormatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	named := &NearEarthObject{Designation: "433", Name: "Eros"}
	if got := named.FullName(); got != "433 (Eros)" {
		t.Errorf("FullName() = %q, want %q", got, "433 (Eros)")
	}

	unnamed := &NearEarthObject{Designation: "2020 AB"}
	if got := unnamed.FullName(); got != "2020 AB" {
		t.Errorf("FullName() = %q, want bare designation", got)
	}
}

func TestNearEarthObjectString(t *testing.T) {
	hazardous := &NearEarthObject{Designation: "1566", Name: "Icarus", Diameter: 1.0, Hazardous: true}
	s := hazardous.String()
	if !strings.Contains(s, "1566 (Icarus)") || !strings.Contains(s, "is potentially hazardous") {
		t.Errorf("String() = %q", s)
	}

	// An unknown diameter is omitted, not rendered as NaN.
	unknown := &NearEarthObject{Designation: "2020 AB", Diameter: math.NaN()}
	if strings.Contains(unknown.String(), "NaN") {
		t.Errorf("String() = %q renders the unknown diameter", unknown.String())
	}
}

func TestCloseApproachString(t *testing.T) {
	approach := &CloseApproach{
		Designation: "433",
		Time:        time.Date(2020, 1, 1, 0, 6, 0, 0, time.UTC),
		Distance:    0.3,
		Velocity:    5.62,
		NEO:         &NearEarthObject{Designation: "433", Name: "Eros"},
	}
	s := approach.String()
	for _, want := range []string{"2020-01-01 00:06", "433 (Eros)", "0.30 au", "5.62 km/s"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
