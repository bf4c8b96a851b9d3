// Package identity allocates integer ids for collections that do not use
// store-generated identifiers.
package identity

import (
	"math/rand/v2"

	"gorm.io/gorm"
)

// Task ids are random five-digit numbers.
const (
	taskIDMin  = 10000
	taskIDSpan = 90000
)

// NextSequenceID returns max(id)+1 over the model's table, computed on the
// caller's handle so it participates in the caller's transaction. The
// read-then-write is not race-free on its own; the unique primary key turns a
// concurrent duplicate into a constraint failure at commit.
func NextSequenceID(tx *gorm.DB, model any) (int, error) {
	var maxID int
	if err := tx.Model(model).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// NewTaskID draws a random five-digit task id. Callers are expected to check
// the draw against existing rows before inserting.
func NewTaskID() int {
	return taskIDMin + rand.IntN(taskIDSpan)
}
