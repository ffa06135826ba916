package intake

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Participant
		want error
	}{
		{"valid", Participant{ID: "17", Age: "24", Sex: "f"}, nil},
		{"padded id", Participant{ID: " 17 ", Age: "24", Sex: "f"}, nil},
		{"empty id", Participant{ID: "", Age: "24", Sex: "f"}, ErrMissingID},
		{"blank id", Participant{ID: "   ", Age: "24", Sex: "f"}, ErrMissingID},
		{"letters", Participant{ID: "p17", Age: "24", Sex: "f"}, ErrNonNumeric},
		{"negative", Participant{ID: "-3", Age: "24", Sex: "f"}, ErrNonNumeric},
		{"decimal", Participant{ID: "1.5", Age: "24", Sex: "f"}, ErrNonNumeric},
		{"overflow", Participant{ID: "99999999999999999999999", Age: "24", Sex: "f"}, ErrNonNumeric},
		{"missing age", Participant{ID: "17", Sex: "f"}, ErrMissingAge},
		{"missing sex", Participant{ID: "17", Age: "24"}, ErrMissingSex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	seed, err := Participant{ID: " 0042"}.Seed()
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if seed != 42 {
		t.Errorf("Seed() = %d, want 42", seed)
	}
}

func TestComplete(t *testing.T) {
	if (Participant{ID: "1", Age: "20"}).Complete() {
		t.Error("participant without sex should not be complete")
	}
	if !(Participant{ID: "1", Age: "20", Sex: "m"}).Complete() {
		t.Error("participant with all fields should be complete")
	}
}
