package session

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"upcoming", StatusUpcoming, false},
		{"ONGOING", StatusOngoing, false},
		{" paused ", StatusPaused, false},
		{"completed", StatusCompleted, false},
		{"done", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    SessionType
		wantErr bool
	}{
		{"work", TypeWork, false},
		{"Study", TypeStudy, false},
		{"personal", TypePersonal, false},
		{"other", TypeOther, false},
		{"hobby", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidType) {
				t.Errorf("ParseType(%q) error = %v, want ErrInvalidType", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseType(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusCompleted.Valid() {
		t.Error("StatusCompleted.Valid() = false")
	}
	if Status(4).Valid() {
		t.Error("Status(4).Valid() = true, want false")
	}
	if Status(-1).Valid() {
		t.Error("Status(-1).Valid() = true, want false")
	}
}

func TestClockSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"23:30:00", 23*3600 + 30*60, false},
		{"23:59:59", 86399, false},
		{"07:05:09", 7*3600 + 5*60 + 9, false},
		{"24:00:00", 0, true},
		{"9:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ClockSeconds(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ClockSeconds(%q) error = %v, want ErrInvalidTime", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ClockSeconds(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ClockSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPatchIsEmptyAndApply(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("empty patch IsEmpty() = false")
	}

	date := "03/01/2026"
	duration := 45
	p := Patch{StartDate: &date, DurationMinutes: &duration}
	if p.IsEmpty() {
		t.Error("non-empty patch IsEmpty() = true")
	}

	sess := testSession("u1")
	p.Apply(sess)

	if sess.StartDate != date {
		t.Errorf("StartDate = %s, want %s", sess.StartDate, date)
	}
	if sess.DurationMinutes != duration {
		t.Errorf("DurationMinutes = %d, want %d", sess.DurationMinutes, duration)
	}
	if sess.StartTime != "23:16:15" {
		t.Errorf("unpatched StartTime = %s, want 23:16:15", sess.StartTime)
	}
}
