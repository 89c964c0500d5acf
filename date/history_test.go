package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Append in reverse order and check the history is still sorted.
	h.Append(d1, v1)
	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Fatalf("History.Len() = %v want 2", h.Len())
	}
	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	// same day overwrites
	h.Append(d1, "again")
	if got, _ := h.Get(d1); got != "again" || h.Len() != 2 {
		t.Errorf("Append(d1) overwrite: Get = %q, Len = %d", got, h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, 1, 10), 10).Append(New(2025, 1, 20), 20)

	testCases := []struct {
		on     Date
		want   float64
		wantOK bool
	}{
		{New(2025, 1, 9), 0, false},
		{New(2025, 1, 10), 10, true},
		{New(2025, 1, 15), 10, true},
		{New(2025, 1, 20), 20, true},
		{New(2025, 2, 1), 20, true},
	}
	for _, tc := range testCases {
		got, ok := h.ValueAsOf(tc.on)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOK)
		}
	}
	if d, v := h.Earliest(); d != New(2025, 1, 10) || v != 10 {
		t.Errorf("Earliest() = %v, %v", d, v)
	}
	if d, v := h.Latest(); d != New(2025, 1, 20) || v != 20 {
		t.Errorf("Latest() = %v, %v", d, v)
	}
}
