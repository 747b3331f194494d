package models

// Movie is a watchlist entry. Year is kept as text, exactly four characters.
type Movie struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:60" json:"title"`
	Year  string `gorm:"size:4" json:"year"`
}
