package appointment

import (
	"testing"
	"time"

	"github.com/velourstudio/salon-scheduler/internal/models"
)

func TestOverlapsHalfOpenIntervals(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(0), at(30), at(0), at(30), true},
		{"partial overlap", at(0), at(30), at(15), at(45), true},
		{"contained", at(0), at(60), at(15), at(30), true},
		{"touching end-to-start", at(0), at(30), at(30), at(60), false},
		{"touching start-to-end", at(30), at(60), at(0), at(30), false},
		{"disjoint", at(0), at(30), at(60), at(90), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusGuards(t *testing.T) {
	if err := CanCancel(StatusPending); err != nil {
		t.Errorf("pending should be cancellable: %v", err)
	}
	if err := CanCancel(StatusConfirmed); err != nil {
		t.Errorf("confirmed should be cancellable: %v", err)
	}
	if err := CanCancel(StatusCompleted); err == nil {
		t.Error("completed must not be cancellable")
	}
	if err := CanCheckIn(StatusCheckedIn); err == nil {
		t.Error("checked_in must not check in again")
	}
	if err := CanMarkNoShow(StatusCancelled); err == nil {
		t.Error("cancelled must not become no_show")
	}
}

func TestCancelStampsTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	if err := Cancel(ap, now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Errorf("Status = %q, want cancelled", ap.Status)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Errorf("CancelledAt = %v, want %v", ap.CancelledAt, now)
	}
}

func TestActiveStatuses(t *testing.T) {
	active := map[Status]bool{
		StatusPending: true, StatusConfirmed: true, StatusCheckedIn: true,
		StatusCancelled: false, StatusCompleted: false, StatusNoShow: false,
	}
	for s, want := range active {
		if got := IsActive(s); got != want {
			t.Errorf("IsActive(%s) = %v, want %v", s, got, want)
		}
	}
}
