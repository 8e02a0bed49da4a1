package errors

import (
	"testing"
)

func TestValidateEventID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "evt-1", false},
		{"valid google id", "5q3v0c1ab8@google.com", false},
		{"valid unicode", "termin-ä", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEventID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEventID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedEvent) {
				t.Errorf("ValidateEventID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeMalformedEvent)
			}
		})
	}
}
