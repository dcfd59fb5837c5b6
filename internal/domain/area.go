package domain

import "database/sql"

// Area top-level territory unit (areas table). Created by
// administrators; deleting one cascades its blocks and properties.
type Area struct {
	AreaID        string         `db:"area_id"`
	Name          string         `db:"name"`    // NOT NULL
	MapURL        string         `db:"map_url"` // NOT NULL, stored opaque
	ResponsibleID sql.NullString `db:"responsible_id"` // nullable
}
