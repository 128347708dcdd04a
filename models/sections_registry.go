package models

import "fmt"

// sectionRequiredFields lists, per known section, the payload fields that
// must be present on create/update. Presence only; values are never typed
// or validated beyond existing. Sections not listed here are accepted with
// any payload at all.
var sectionRequiredFields = map[string][]string{
	"meetings":     {"memberName", "date"},
	"visitors":     {"visitorName", "date"},
	"testimonials": {"memberName", "content"},
	"connections":  {"memberName"},
	"referrals":    {"referredTo", "date"},
	"one-on-ones":  {"memberName", "date"},
}

// ValidateSectionPayload checks the per-field presence rules for a section.
// Unknown sections always pass.
func ValidateSectionPayload(sectionType string, data map[string]interface{}) error {
	required, ok := sectionRequiredFields[sectionType]
	if !ok {
		return nil
	}
	for _, field := range required {
		v, present := data[field]
		if !present || v == nil || v == "" {
			return fmt.Errorf("field %q is required for section %q", field, sectionType)
		}
	}
	return nil
}
