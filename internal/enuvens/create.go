// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enuvens

// CreatePayload is the fixed-shape body of the person-creation endpoint.
// Extrafields maps extension-field codes (and "code_index" flag positions)
// to their values.
type CreatePayload struct {
	AvatarFile      string         `json:"avatar_file"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Password        string         `json:"password"`
	Employments     []int          `json:"employments"`
	Groups          []int          `json:"groups"`
	Categories      []int          `json:"categories"`
	Gender          string         `json:"gender"`
	Phone1          string         `json:"phone_1"`
	Phone2          string         `json:"phone_2"`
	Email           string         `json:"email"`
	Address1        string         `json:"address_1"`
	Address2        string         `json:"address_2"`
	AddressNumber   string         `json:"address_number"`
	PostalCode      string         `json:"postal_code"`
	CityID          int            `json:"id_city"`
	StateID         string         `json:"id_state"`
	CountryID       string         `json:"id_country"`
	BirthDate       string         `json:"birthydate"`
	Doc1            string         `json:"doc_1"`
	Doc2            string         `json:"doc_2"`
	MaritalStatus   string         `json:"marital_status"`
	Scholarity      string         `json:"scholarity"`
	SpouseName      string         `json:"spouse_name"`
	SpouseChristian string         `json:"spouse_christian"`
	ConversionDate  string         `json:"conversion_date"`
	BaptismStatus   int            `json:"baptism_status"`
	BaptismDate     string         `json:"baptism_date"`
	Notes           string         `json:"notes"`
	Extrafields     map[string]any `json:"extrafields"`
}
