// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export orchestrates the group pipeline: list groups, resolve
// memberships, fan out person fetches, and project rows into a spreadsheet.
package export

import (
	"fmt"
	"strings"

	"github.com/dfcamara/enuvex/pkg/types"
)

// Columns is the fixed output column schema.
var Columns = []string{
	"Congregation",
	"Registered",
	"Name",
	"Father",
	"Mother",
	"CPF",
	"Birth",
	"Birthplace",
	"Role",
	"Baptism",
	"Street",
	"Number",
	"District",
	"PostalCode",
	"Phone",
	"Email",
	"MaritalStatus",
}

// ColumnWidths holds the per-column display widths handed to the sink.
var ColumnWidths = []float64{25, 20, 35, 35, 35, 15, 15, 25, 20, 15, 40, 10, 30, 12, 15, 25, 15}

// ProjectRow turns a canonical person plus its group context into one output
// row. Pure function: no I/O, and missing optionals project to "".
func ProjectRow(p types.Person, groupName string) []string {
	return []string{
		strings.ToUpper(groupName),
		FormatDate(p.CreatedAt),
		strings.ToUpper(p.FullName),
		strings.ToUpper(p.FatherName),
		strings.ToUpper(p.MotherName),
		FormatCPF(p.DocumentID),
		FormatDate(p.BirthDate),
		strings.ToUpper(p.Birthplace),
		string(p.Role),
		FormatDate(p.BaptismDate),
		strings.ToUpper(p.AddressLine1),
		p.AddressNumber,
		strings.ToUpper(p.AddressLine2),
		FormatPostalCode(p.PostalCode),
		p.Phone,
		p.Email,
		p.MaritalStatus,
	}
}

// FormatCPF punctuates an 11-digit document id as DDD.DDD.DDD-DD. Any other
// shape passes through unchanged, preserving observed upstream behavior.
func FormatCPF(doc string) string {
	if len(doc) != 11 || !allDigits(doc) {
		return doc
	}
	return fmt.Sprintf("%s.%s.%s-%s", doc[0:3], doc[3:6], doc[6:9], doc[9:11])
}

// FormatPostalCode punctuates an 8-digit postal code as DDDDD-DDD; anything
// else passes through unchanged.
func FormatPostalCode(code string) string {
	if len(code) != 8 || !allDigits(code) {
		return code
	}
	return code[0:5] + "-" + code[5:8]
}

// FormatDate converts an ISO date ("2006-01-02", optionally with a time
// suffix) to the DD/MM/YYYY display form. Empty input yields ""; values that
// do not split into three date parts pass through unchanged.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}

	datePart := date
	timePart := ""
	if idx := strings.IndexByte(date, ' '); idx >= 0 {
		datePart = date[:idx]
		timePart = strings.TrimSpace(date[idx+1:])
	}

	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return date
	}

	out := parts[2] + "/" + parts[1] + "/" + parts[0]
	if timePart != "" {
		out += " " + timePart
	}
	return out
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
