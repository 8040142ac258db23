package specification

import "gorm.io/gorm"

// InsertionOrder lists notes in the order they were created. Ids are
// monotonic so ascending id is insertion order.
type InsertionOrder struct{}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return OrderBy{Field: "id"}.Apply(db)
}
