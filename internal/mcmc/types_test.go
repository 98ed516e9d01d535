package mcmc

import (
	"errors"
	"math"
	"testing"
)

func TestParams_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		valid  bool
	}{
		{"empty", Params{}, true},
		{"normal", Params{-6.73, 1e23, 13.8}, true},
		{"zeros", Params{0.0, 0.0}, true},
		{"with NaN", Params{1.0, math.NaN()}, false},
		{"with +Inf", Params{1.0, math.Inf(1)}, false},
		{"with -Inf", Params{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParams_Norm(t *testing.T) {
	tests := []struct {
		params   Params
		expected float64
	}{
		{Params{3, 4}, 5.0},
		{Params{1, 0}, 1.0},
		{Params{0, 0}, 0.0},
		{Params{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.params.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.params, got, tt.expected)
		}
	}
}

func TestParams_CloneAndSub(t *testing.T) {
	a := Params{1, 2, 3}

	c := a.Clone()
	c[0] = 99
	if a[0] == 99 {
		t.Error("Clone did not create independent copy")
	}

	diff := Params{4, 5, 6}.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}
}

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()

	if cfg.Walkers != 16 {
		t.Errorf("expected 16 walkers, got %d", cfg.Walkers)
	}
	if cfg.Steps != 1000 {
		t.Errorf("expected 1000 steps, got %d", cfg.Steps)
	}
	if cfg.BurnIn != 200 {
		t.Errorf("expected burn-in 200, got %d", cfg.BurnIn)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
}

func TestSampleError(t *testing.T) {
	err := &SampleError{Step: 150, Walker: 7, Wrapped: ErrInvalidParams}

	expected := "step 150 (walker 7): mcmc: invalid parameters (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("SampleError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, ErrInvalidParams) {
		t.Error("SampleError should unwrap to its cause")
	}
}
