package validation

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{name: "Pretty is valid", format: "pretty", expectErr: false},
		{name: "CSV is valid", format: "csv", expectErr: false},
		{name: "YAML is valid", format: "yaml", expectErr: false},
		{name: "Empty is invalid", format: "", expectErr: true},
		{name: "Unknown is invalid", format: "xml", expectErr: true},
		{name: "Case sensitive", format: "Pretty", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, expectErr = %v", tt.format, err, tt.expectErr)
			}
		})
	}
}
