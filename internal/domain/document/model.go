package document

import "time"

// Document is a joining-form template: each flag names a personal field the
// trip's joining form must collect.
type Document struct {
	ID           string    `firestore:"id" json:"id"`
	FirstName    bool      `firestore:"firstName" json:"firstName"`
	LastName     bool      `firestore:"lastName" json:"lastName"`
	Passport     bool      `firestore:"passport" json:"passport"`
	Age          bool      `firestore:"age" json:"age"`
	Gender       bool      `firestore:"gender" json:"gender"`
	BirthDate    bool      `firestore:"birthDate" json:"birthDate"`
	Identifier   bool      `firestore:"idNumber" json:"idNumber"`
	HealthIssues bool      `firestore:"healthIssues" json:"healthIssues"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// DeclaredFields lists the form-field keys this template requires, in a
// fixed order so validation reports are deterministic.
func (d Document) DeclaredFields() []string {
	var fields []string
	for _, f := range []struct {
		key string
		on  bool
	}{
		{"firstName", d.FirstName},
		{"lastName", d.LastName},
		{"passport", d.Passport},
		{"age", d.Age},
		{"gender", d.Gender},
		{"birthDate", d.BirthDate},
		{"idNumber", d.Identifier},
		{"healthIssues", d.HealthIssues},
	} {
		if f.on {
			fields = append(fields, f.key)
		}
	}
	return fields
}

type Input struct {
	FirstName    *bool `json:"firstName,omitempty"`
	LastName     *bool `json:"lastName,omitempty"`
	Passport     *bool `json:"passport,omitempty"`
	Age          *bool `json:"age,omitempty"`
	Gender       *bool `json:"gender,omitempty"`
	BirthDate    *bool `json:"birthDate,omitempty"`
	Identifier   *bool `json:"idNumber,omitempty"`
	HealthIssues *bool `json:"healthIssues,omitempty"`
}
