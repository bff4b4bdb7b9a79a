// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package person derives canonical member records from raw API payloads and
// their free-form extension fields.
package person

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dfcamara/enuvex/pkg/types"
)

// Extension-field codes observed in the remote system.
const (
	FieldFather     types.FieldID = 15819
	FieldMother     types.FieldID = 15820
	FieldRole       types.FieldID = 15822
	FieldBirthplace types.FieldID = 15823
	FieldProfession types.FieldID = 15825
	FieldEmployed   types.FieldID = 15826
)

// ParseExtrafields decodes the JSON-encoded extension-field array carried
// inside the raw record. An empty string decodes to no fields.
func ParseExtrafields(encoded string) ([]types.ExtraField, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	var fields []types.ExtraField
	if err := json.Unmarshal([]byte(encoded), &fields); err != nil {
		return nil, fmt.Errorf("parsing extension fields: %w", err)
	}
	return fields, nil
}

// fieldValue returns the trimmed value of the extension field with the
// given code, or "" when absent.
func fieldValue(fields []types.ExtraField, id types.FieldID) string {
	for _, f := range fields {
		if f.ID == id {
			return strings.TrimSpace(f.Value)
		}
	}
	return ""
}

// Resolve maps the role-selector flag group to a single role label. The
// selector carries an ordered flag list; the first true flag wins. A record
// without the selector resolves to RoleFieldNotFound, a selector with no
// flag set to RoleNone.
func Resolve(fields []types.ExtraField) types.Role {
	var selector *types.ExtraField
	for i := range fields {
		if fields[i].ID == FieldRole {
			selector = &fields[i]
			break
		}
	}
	if selector == nil || selector.Sub == nil {
		return types.RoleFieldNotFound
	}

	for i, flag := range selector.Sub {
		if flag.Value && i < len(types.RoleOrder) {
			return types.RoleOrder[i]
		}
	}
	return types.RoleNone
}

// Normalize maps a raw API record into the canonical Person. Family names
// and the birthplace come from fixed extension-field codes; the role from
// the selector flag group.
func Normalize(raw types.RawPerson) (types.Person, error) {
	fields, err := ParseExtrafields(raw.Extrafields)
	if err != nil {
		return types.Person{}, fmt.Errorf("person %d: %w", raw.ID, err)
	}

	return types.Person{
		ID:            raw.ID,
		FullName:      raw.FullName,
		DocumentID:    raw.Doc1,
		BirthDate:     raw.BirthDate,
		BaptismDate:   raw.BaptismDate,
		Birthplace:    fieldValue(fields, FieldBirthplace),
		Role:          Resolve(fields),
		FatherName:    fieldValue(fields, FieldFather),
		MotherName:    fieldValue(fields, FieldMother),
		AddressLine1:  raw.Address1,
		AddressLine2:  raw.Address2,
		AddressNumber: raw.AddressNumber,
		PostalCode:    raw.PostalCode,
		Phone:         raw.Phone1,
		Email:         raw.Email,
		MaritalStatus: raw.MaritalStatus,
		CreatedAt:     raw.CreatedAt,
	}, nil
}
