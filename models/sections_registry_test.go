package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSectionPayload(t *testing.T) {
	tests := []struct {
		name        string
		sectionType string
		data        map[string]interface{}
		wantErr     bool
	}{
		{
			name:        "meetings all fields present",
			sectionType: "meetings",
			data:        map[string]interface{}{"memberName": "Sasi", "date": "2026-01-10"},
		},
		{
			name:        "meetings missing date",
			sectionType: "meetings",
			data:        map[string]interface{}{"memberName": "Sasi"},
			wantErr:     true,
		},
		{
			name:        "empty string counts as missing",
			sectionType: "testimonials",
			data:        map[string]interface{}{"memberName": "Sasi", "content": ""},
			wantErr:     true,
		},
		{
			name:        "nil value counts as missing",
			sectionType: "visitors",
			data:        map[string]interface{}{"visitorName": nil, "date": "2026-01-10"},
			wantErr:     true,
		},
		{
			name:        "unknown section is fully opaque",
			sectionType: "custom-section",
			data:        map[string]interface{}{},
		},
		{
			name:        "extra fields are always allowed",
			sectionType: "referrals",
			data:        map[string]interface{}{"referredTo": "Bob", "date": "2026-01-10", "note": "warm intro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSectionPayload(tt.sectionType, tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
