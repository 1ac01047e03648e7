package excel

import (
	"fmt"
	"strings"

	"heredity/domain/core"
	"heredity/domain/family"
)

// Column names of a family sheet
const (
	ColumnName   = "name"
	ColumnMother = "mother"
	ColumnFather = "father"
	ColumnTrait  = "trait"
)

// FromRows parses a header row followed by one row per person. Columns are
// matched case-insensitively and may come in any order; the trait column is
// optional. Blank parents mean none, blank traits mean unknown.
func FromRows(rows [][]string) (*family.Family, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("family sheet must have a header row and at least one person")
	}

	cols := make(map[string]int)
	for i, header := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{ColumnName, ColumnMother, ColumnFather} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("family sheet is missing the %q column", required)
		}
	}

	cell := func(row []string, column string) string {
		i, ok := cols[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	fam := family.NewFamily()
	for n, row := range rows[1:] {
		line := n + 2
		if isBlank(row) {
			continue
		}

		id, err := core.ParsePersonID(cell(row, ColumnName))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		trait, err := family.ParseTrait(cell(row, ColumnTrait))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		p := family.Person{ID: id, Trait: trait}
		if mother := cell(row, ColumnMother); mother != "" {
			m := core.PersonID(mother)
			p.Mother = &m
		}
		if father := cell(row, ColumnFather); father != "" {
			f := core.PersonID(father)
			p.Father = &f
		}
		fam.Add(p)
	}

	if err := fam.Validate(); err != nil {
		return nil, err
	}
	return fam, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
