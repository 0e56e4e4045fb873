package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Price       string     `db:"price"` // numeric как текст
	Currency    string     `db:"currency"`
	Image       string     `db:"image"`
	Rating      float64    `db:"rating"`
	Position    int        `db:"position"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}
