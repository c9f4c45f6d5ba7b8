package game

import (
	"fmt"
	"strings"
)

// Type is a creature type tag. Attacks carry the attacker's types and every
// creature stores how effective each type is against it.
type Type string

const (
	TypeBug      Type = "bug"
	TypeDark     Type = "dark"
	TypeDragon   Type = "dragon"
	TypeElectric Type = "electric"
	TypeFairy    Type = "fairy"
	TypeFight    Type = "fight"
	TypeFire     Type = "fire"
	TypeFlying   Type = "flying"
	TypeGhost    Type = "ghost"
	TypeGrass    Type = "grass"
	TypeGround   Type = "ground"
	TypeIce      Type = "ice"
	TypeNormal   Type = "normal"
	TypePoison   Type = "poison"
	TypePsychic  Type = "psychic"
	TypeRock     Type = "rock"
	TypeSteel    Type = "steel"
	TypeWater    Type = "water"

	// TypeNone marks an absent secondary type.
	TypeNone Type = ""
)

// Types is the fixed type vocabulary in catalog column order.
var Types = []Type{
	TypeBug, TypeDark, TypeDragon, TypeElectric, TypeFairy, TypeFight,
	TypeFire, TypeFlying, TypeGhost, TypeGrass, TypeGround, TypeIce,
	TypeNormal, TypePoison, TypePsychic, TypeRock, TypeSteel, TypeWater,
}

var typeSet = func() map[Type]struct{} {
	m := make(map[Type]struct{}, len(Types))
	for _, t := range Types {
		m[t] = struct{}{}
	}
	return m
}()

// Valid reports whether t belongs to the vocabulary. TypeNone is not valid.
func (t Type) Valid() bool {
	_, ok := typeSet[t]
	return ok
}

// ParseType normalizes s and checks it against the vocabulary. The source
// data spells the fighting type "fighting" in type columns and "fight" in
// resistance headers, so both map to TypeFight.
func ParseType(s string) (Type, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return TypeNone, nil
	}
	if v == "fighting" {
		v = string(TypeFight)
	}
	t := Type(v)
	if !t.Valid() {
		return TypeNone, fmt.Errorf("unknown type %q", s)
	}
	return t, nil
}

// ResistanceTable maps an attacking type to the multiplier applied against
// the owner of the table.
type ResistanceTable map[Type]float64

// Clone returns an independent copy of the table.
func (r ResistanceTable) Clone() ResistanceTable {
	out := make(ResistanceTable, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Missing returns the vocabulary types that have no entry in the table.
func (r ResistanceTable) Missing() []Type {
	var out []Type
	for _, t := range Types {
		if _, ok := r[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
