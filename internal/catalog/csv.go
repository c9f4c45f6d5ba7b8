package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
)

const (
	colName     = "name"
	colType1    = "type1"
	colType2    = "type2"
	colAttack   = "attack"
	againstPref = "against_"
)

// LoadCSV reads catalog records from the CSV file at path.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV reads records from r. The header row must provide name, type1,
// type2, attack and one against_<type> column per vocabulary type; any
// other columns are ignored.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &game.ValidationError{Record: -1, Reason: "empty catalog file"}
		}
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{colName, colType1, colType2, colAttack} {
		if _, ok := index[col]; !ok {
			return nil, &game.ValidationError{Record: -1, Reason: "missing column " + col}
		}
	}
	for _, t := range game.Types {
		if _, ok := index[againstPref+string(t)]; !ok {
			return nil, &game.ValidationError{Record: -1, Reason: "missing column " + againstPref + string(t)}
		}
	}

	var out []Record
	for row := 0; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i := index[col]
			if i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}
		name := get(colName)
		attack, err := strconv.ParseFloat(get(colAttack), 64)
		if err != nil {
			return nil, &game.ValidationError{Record: row, Name: name, Field: colAttack, Reason: "not a number"}
		}
		rec := Record{
			Name:        name,
			Type1:       get(colType1),
			Type2:       get(colType2),
			Attack:      attack,
			Resistances: make(map[string]float64, len(game.Types)),
		}
		for _, t := range game.Types {
			col := againstPref + string(t)
			v, err := strconv.ParseFloat(get(col), 64)
			if err != nil {
				return nil, &game.ValidationError{Record: row, Name: name, Field: col, Reason: "not a number"}
			}
			rec.Resistances[string(t)] = v
		}
		out = append(out, rec)
	}
	return out, nil
}
