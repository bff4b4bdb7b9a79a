// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// PersonID is the remote system's identifier for a person. It is the cache
// and fan-out key.
type PersonID int

// GroupRef identifies a congregation group as returned by the groups listing.
type GroupRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GroupMembership holds the member ids of one group. MemberIDs may be empty;
// a group without members is not an error.
type GroupMembership struct {
	Group     GroupRef
	MemberIDs []PersonID
}

// ExtraField is one entry of a person's free-form extension fields. The API
// serializes the id both as a number and as a string depending on the field,
// so ID unmarshals from either form. Sub carries the ordered flag list for
// multi-flag fields such as the role selector.
type ExtraField struct {
	ID    FieldID        `json:"id_ef"`
	Value string         `json:"value"`
	Sub   []ExtraSubFlag `json:"sub,omitempty"`
}

// ExtraSubFlag is one boolean flag inside a multi-flag extension field.
type ExtraSubFlag struct {
	Value bool `json:"value"`
}

// FieldID is a numeric extension-field code that the API encodes
// inconsistently (15819 vs "15822").
type FieldID int

// UnmarshalJSON accepts both the numeric and the quoted form.
func (f *FieldID) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FieldID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var parsed int
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return err
	}
	*f = FieldID(parsed)
	return nil
}

// RawPerson is the unparsed person payload from the people endpoint.
// Extrafields is a JSON-encoded array of ExtraField carried inside a string.
type RawPerson struct {
	ID            PersonID `json:"id"`
	FullName      string   `json:"full_name"`
	Doc1          string   `json:"doc_1"`
	BirthDate     string   `json:"birthydate"`
	BaptismDate   string   `json:"baptism_date"`
	CreatedAt     string   `json:"created_at"`
	Address1      string   `json:"address_1"`
	Address2      string   `json:"address_2"`
	AddressNumber string   `json:"address_number"`
	PostalCode    string   `json:"postal_code"`
	Phone1        string   `json:"phone_1"`
	Email         string   `json:"email"`
	MaritalStatus string   `json:"marital_status"`
	Extrafields   string   `json:"extrafields"`
}

// Person is the canonical, fully derived member record. Role is always one
// of the closed label set or a sentinel; it is never empty.
type Person struct {
	ID            PersonID `json:"id" yaml:"id"`
	FullName      string   `json:"full_name" yaml:"full_name"`
	DocumentID    string   `json:"document_id" yaml:"document_id"`
	BirthDate     string   `json:"birth_date" yaml:"birth_date"`
	BaptismDate   string   `json:"baptism_date" yaml:"baptism_date"`
	Birthplace    string   `json:"birthplace" yaml:"birthplace"`
	Role          Role     `json:"role" yaml:"role"`
	FatherName    string   `json:"father_name" yaml:"father_name"`
	MotherName    string   `json:"mother_name" yaml:"mother_name"`
	AddressLine1  string   `json:"address_line1" yaml:"address_line1"`
	AddressLine2  string   `json:"address_line2" yaml:"address_line2"`
	AddressNumber string   `json:"address_number" yaml:"address_number"`
	PostalCode    string   `json:"postal_code" yaml:"postal_code"`
	Phone         string   `json:"phone" yaml:"phone"`
	Email         string   `json:"email" yaml:"email"`
	MaritalStatus string   `json:"marital_status" yaml:"marital_status"`
	CreatedAt     string   `json:"created_at" yaml:"created_at"`
}
