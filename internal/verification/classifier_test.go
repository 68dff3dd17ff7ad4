package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    Category
	}{
		{"webinar keyword", "Attended a webinar on cloud security", CategoryWebinar},
		{"seminar keyword", "Quarterly security seminar", CategoryWebinar},
		{"training keyword", "Incident response training", CategoryTraining},
		{"bootcamp keyword", "Two week pentest bootcamp", CategoryTraining},
		{"conference keyword", "Spoke at a security conference", CategoryConference},
		{"summit keyword", "Cloud security summit in Austin", CategoryConference},
		{"course keyword", "Online course on cryptography", CategoryCourse},
		{"certification keyword", "Passed the certification exam", CategoryCertification},
		{"volunteer keyword", "Volunteer work at a local CTF", CategoryVolunteer},
		{"mentor keyword", "Mentored junior analysts", CategoryVolunteer},
		{"no keyword", "personal reading", CategorySelfStudy},
		{"empty description", "", CategorySelfStudy},
		{"case insensitive", "WEBINAR on zero trust", CategoryWebinar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.description))
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Overlapping keyword sets resolve by the fixed evaluation order, not
	// by match count.
	assert.Equal(t, CategoryWebinar, Classify("webinar workshop"))
	assert.Equal(t, CategoryTraining, Classify("training conference"))
	assert.Equal(t, CategoryWebinar, Classify("conference presentation"))
	assert.Equal(t, CategoryTraining, Classify("workshop at the summit"))
}
