package entity

type Category struct {
	BaseSimple
	Name string `db:"name"`

	// Populated by listing queries only
	BookCount int64 `db:"-"`
}
