package money

import "testing"

func TestEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		tenure    int
		want      float64
	}{
		{"standard amortization", 100000, 12, 12, 8885},
		{"zero rate splits evenly", 100000, 0, 12, 8333},
		{"single month", 12000, 12, 1, 12120},
		{"zero principal", 0, 12, 12, 0},
		{"zero tenure", 100000, 12, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EMI(tt.principal, tt.rate, tt.tenure); got != tt.want {
				t.Fatalf("EMI(%v, %v, %d) = %v, want %v", tt.principal, tt.rate, tt.tenure, got, tt.want)
			}
		})
	}
}

func TestSimpleInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		tenure    int
		want      float64
	}{
		{"full year", 100000, 12, 12, 12000},
		{"half year", 50000, 16, 6, 4000},
		{"high band", 20000, 21, 24, 8400},
		{"zero principal", 0, 12, 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimpleInterest(tt.principal, tt.rate, tt.tenure); got != tt.want {
				t.Fatalf("SimpleInterest(%v, %v, %d) = %v, want %v", tt.principal, tt.rate, tt.tenure, got, tt.want)
			}
		})
	}
}

func TestRecoveryAfterHaircut(t *testing.T) {
	if got := RecoveryAfterHaircut(50000, 8); got != 46000 {
		t.Fatalf("RecoveryAfterHaircut(50000, 8) = %v, want 46000", got)
	}
	if got := RecoveryAfterHaircut(12345.67, 8); got != 11358.02 {
		t.Fatalf("RecoveryAfterHaircut(12345.67, 8) = %v, want 11358.02", got)
	}
	if got := RecoveryAfterHaircut(0, 8); got != 0 {
		t.Fatalf("RecoveryAfterHaircut(0, 8) = %v, want 0", got)
	}
}

func TestRecoveryPercent(t *testing.T) {
	if got := RecoveryPercent(46000, 40000); got != 115 {
		t.Fatalf("RecoveryPercent(46000, 40000) = %v, want 115", got)
	}
	if got := RecoveryPercent(23000, 40000); got != 57.5 {
		t.Fatalf("RecoveryPercent(23000, 40000) = %v, want 57.5", got)
	}
	if got := RecoveryPercent(1000, 0); got != 0 {
		t.Fatalf("RecoveryPercent with zero principal = %v, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(10.126); got != 10.13 {
		t.Fatalf("Round2(10.126) = %v, want 10.13", got)
	}
	if got := Round2(10.124); got != 10.12 {
		t.Fatalf("Round2(10.124) = %v, want 10.12", got)
	}
	if got := Round2(10); got != 10 {
		t.Fatalf("Round2(10) = %v, want 10", got)
	}
}
