package domain

import "database/sql"

// Property status values (Imovel.status in the legacy schema).
// fechado is the initial state and the state every visited property
// returns to at the cycle boundary.
const (
	StatusClosed  = "fechado"
	StatusVisited = "visitado"
	StatusRefused = "recusa"
)

// Property types (Imovel/Visita.tipo).
const (
	PropertyTypeResidence = "r"   // residência
	PropertyTypeCommerce  = "c"   // comércio
	PropertyTypeTerrain   = "tb"  // terreno baldio
	PropertyTypePOI       = "pe"  // ponto estratégico
	PropertyTypeOther     = "out" // outros
)

// ValidStatus reports whether s is one of the three property statuses.
func ValidStatus(s string) bool {
	return s == StatusClosed || s == StatusVisited || s == StatusRefused
}

// ValidPropertyType reports whether t is a known property type code.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeResidence, PropertyTypeCommerce, PropertyTypeTerrain,
		PropertyTypePOI, PropertyTypeOther:
		return true
	}
	return false
}

// Property a single address subject to inspection (properties table).
//
// Status transitions only through recording a visit (→ visitado/recusa)
// or the cycle reset (visitado → fechado). Plain edits change attributes
// but never the status unless one is explicitly supplied.
type Property struct {
	PropertyID  string         `db:"property_id"`
	BlockID     string         `db:"block_id"`
	Position    int            `db:"position"` // unique within the block
	Address     string         `db:"address"`  // NOT NULL
	PType       string         `db:"ptype"`    // NOT NULL, r/c/tb/pe/out
	Inhabitants int            `db:"inhabitants"`
	Dogs        int            `db:"dogs"`
	Cats        int            `db:"cats"`
	Note        sql.NullString `db:"note"`   // nullable
	Status      string         `db:"status"` // NOT NULL, default 'fechado'
}
