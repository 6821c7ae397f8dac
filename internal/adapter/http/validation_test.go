package http

import (
	"strings"
	"testing"
)

type validationProbe struct {
	ID     string  `validate:"required,hex32"`
	Amount float64 `validate:"required,gt=0,dec2"`
}

func TestCustomValidatorTags(t *testing.T) {
	v := NewValidator()

	ok := validationProbe{ID: strings.Repeat("a", 32), Amount: 45.50}
	if err := v.Validate(&ok); err != nil {
		t.Fatalf("valid probe rejected: %v", err)
	}

	tests := []struct {
		name  string
		probe validationProbe
		field string
	}{
		{"uppercase hex", validationProbe{ID: strings.Repeat("A", 32), Amount: 1}, "ID"},
		{"short hex", validationProbe{ID: strings.Repeat("a", 31), Amount: 1}, "ID"},
		{"three decimal places", validationProbe{ID: strings.Repeat("a", 32), Amount: 45.505}, "Amount"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.probe)
			if err == nil {
				t.Fatal("expected validation error")
			}
			fes := ToFieldErrors(err)
			if len(fes) != 1 || fes[0].Field != tc.field {
				t.Errorf("field errors = %+v, want single error on %s", fes, tc.field)
			}
			if fes[0].Message == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestToFieldErrorsNonValidatorError(t *testing.T) {
	fes := ToFieldErrors(errFake{})
	if len(fes) != 1 || fes[0].Field != "_" {
		t.Errorf("fallback mapping = %+v", fes)
	}
}

type errFake struct{}

func (errFake) Error() string { return "boom" }
