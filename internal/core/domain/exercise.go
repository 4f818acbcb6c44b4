package domain

// Exercise is a short guided activity shown on the happy and sad mood pages
// instead of products.
type Exercise struct {
	ID      string `json:"id"`
	Mood    string `json:"mood"`
	Emoji   string `json:"emoji"`
	Title   string `json:"title"`
	Desc    string `json:"desc"`
	Minutes int    `json:"mins"`
}
