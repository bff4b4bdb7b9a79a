// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dfcamara/enuvex/internal/enuvens"
	"github.com/dfcamara/enuvex/pkg/types"
)

// Source spreadsheet column names (Portuguese, as produced by the office
// template the congregations fill in).
const (
	colFirstName     = "nome"
	colLastName      = "sobrenome"
	colDocument      = "cpf"
	colPhone         = "telefone"
	colBirthDate     = "data_nascimento"
	colGender        = "genero"
	colEmail         = "email"
	colStreet        = "endereco"
	colDistrict      = "bairro"
	colNumber        = "numero"
	colPostalCode    = "cep"
	colCity          = "cidade"
	colState         = "estado"
	colMaritalStatus = "estado_civil"
	colScholarity    = "escolaridade"
	colEmployments   = "employments"
	colGroups        = "groups"
	colBaptismStatus = "status_batismo"
	colBaptismDate   = "data_batismo"
	colNotes         = "observacoes"
	colFather        = "nome_pai"
	colMother        = "nome_mae"
	colBirthplace    = "cidade_natal"
	colProfession    = "profissao"
	colEmployed      = "trabalha"
)

// Deployment defaults applied when a row leaves the field blank.
const (
	defaultCityID  = 71917
	defaultStateID = "Goias"
	defaultCountry = "BR"
)

// Validate checks the required row fields: first name, last name, and
// document id. A failing row is skipped, not fatal.
func Validate(r Row) error {
	var missing []string
	for _, col := range []string{colFirstName, colLastName, colDocument} {
		if r.Get(col) == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("row %d: missing required fields: %s", r.Line, strings.Join(missing, ", "))
	}
	return nil
}

// Convert maps one spreadsheet row to the creation payload, filling the
// fixed extension-field map and the deployment defaults.
func Convert(r Row, cfg types.UploadConfig) enuvens.CreatePayload {
	gender := r.Get(colGender)
	if gender == "" {
		gender = "F"
	}
	marital := r.Get(colMaritalStatus)
	if marital == "" {
		marital = "single"
	}

	employments := intList(r.Get(colEmployments))
	if len(employments) == 0 && cfg.DefaultEmploymentID != 0 {
		employments = []int{cfg.DefaultEmploymentID}
	}
	groups := intList(r.Get(colGroups))
	if len(groups) == 0 && cfg.DefaultGroupID != 0 {
		groups = []int{cfg.DefaultGroupID}
	}

	cityID := defaultCityID
	if n, err := strconv.Atoi(r.Get(colCity)); err == nil {
		cityID = n
	}
	stateID := r.Get(colState)
	if stateID == "" {
		stateID = defaultStateID
	}

	extrafields := map[string]any{
		"15819": r.Get(colFather),
		"15820": r.Get(colMother),
		"15823": r.Get(colBirthplace),
		"15825": r.Get(colProfession),
		"15826": boolCell(r.Get(colEmployed)),
	}
	for i := 0; i < 2; i++ {
		extrafields[fmt.Sprintf("15821_%d", i)] = boolCell(r.Get(fmt.Sprintf("ministerio_%d", i)))
	}
	for i := 0; i < 4; i++ {
		extrafields[fmt.Sprintf("17295_%d", i)] = boolCell(r.Get(fmt.Sprintf("tipo_membro_%d", i)))
	}
	for i := 0; i < 7; i++ {
		extrafields[fmt.Sprintf("15822_%d", i)] = boolCell(r.Get(fmt.Sprintf("escala_%d", i)))
	}

	return enuvens.CreatePayload{
		FirstName:     r.Get(colFirstName),
		LastName:      r.Get(colLastName),
		Employments:   employments,
		Groups:        groups,
		Categories:    []int{},
		Gender:        gender,
		Phone1:        r.Get(colPhone),
		Email:         r.Get(colEmail),
		Address1:      r.Get(colStreet),
		Address2:      r.Get(colDistrict),
		AddressNumber: r.Get(colNumber),
		PostalCode:    r.Get(colPostalCode),
		CityID:        cityID,
		StateID:       stateID,
		CountryID:     defaultCountry,
		BirthDate:     r.Get(colBirthDate),
		Doc1:          r.Get(colDocument),
		MaritalStatus: marital,
		Scholarity:    r.Get(colScholarity),
		BaptismStatus: intCell(r.Get(colBaptismStatus)),
		BaptismDate:   r.Get(colBaptismDate),
		Notes:         r.Get(colNotes),
		Extrafields:   extrafields,
	}
}

// intList parses a comma-separated list of ids, dropping anything that is
// not a number.
func intList(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func intCell(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func boolCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "sim":
		return true
	}
	return false
}
