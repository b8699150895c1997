package negotiate

import "testing"

func TestStagesDefaultLadder(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	got := cfg.Stages(60)
	want := []Stage{
		{Level: 0, DurationMinutes: 60},
		{Level: 1, DurationMinutes: 30},
		{Level: 2, DurationMinutes: 15},
		{Level: 3, DurationMinutes: 15, CapRelaxed: true},
	}
	if len(got) != len(want) {
		t.Fatalf("Stages(60) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStagesSkipsStepsAtOrAboveRequested(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	got := cfg.Stages(20)
	// 30 is not shorter than 20, only 15 qualifies.
	want := []Stage{
		{Level: 0, DurationMinutes: 20},
		{Level: 1, DurationMinutes: 15},
		{Level: 2, DurationMinutes: 15, CapRelaxed: true},
	}
	if len(got) != len(want) {
		t.Fatalf("Stages(20) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStagesClipsBelowMinimumViable(t *testing.T) {
	cfg := Config{Ladder: []int{30, 15, 5}, MinViableMinutes: 15}
	cfg.SetDefaults()
	got := cfg.Stages(45)
	last := got[len(got)-1]
	if !last.CapRelaxed || last.DurationMinutes != 15 {
		t.Fatalf("final stage = %+v, want cap-relaxed at 15", last)
	}
	for _, st := range got {
		if st.DurationMinutes < 15 {
			t.Errorf("stage %+v below minimum viable duration", st)
		}
	}
}

func TestStagesRequestedAtMinimum(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	got := cfg.Stages(15)
	want := []Stage{
		{Level: 0, DurationMinutes: 15},
		{Level: 1, DurationMinutes: 15, CapRelaxed: true},
	}
	if len(got) != len(want) {
		t.Fatalf("Stages(15) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestConfigValidate(t *testing.T) {
	bad := Config{Ladder: []int{30, -5}, MinViableMinutes: 15}
	if err := bad.Validate(); err == nil {
		t.Errorf("negative ladder step must be rejected")
	}
	bad = Config{Ladder: []int{30}, MinViableMinutes: 0}
	if err := bad.Validate(); err == nil {
		t.Errorf("zero minimum viable duration must be rejected")
	}
}
