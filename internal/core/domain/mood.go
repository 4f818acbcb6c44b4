package domain

// Mood is one of the storefront themes. The slug doubles as the route
// segment and the catalog filter value.
type Mood struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// Moods lists the registered themes in display order.
func Moods() []Mood {
	return []Mood{
		{Slug: "inspired", Label: "Inspired", Emoji: "✨"},
		{Slug: "angry", Label: "Angry", Emoji: "🔥"},
		{Slug: "happy", Label: "Happy", Emoji: "😊"},
		{Slug: "sad", Label: "Sad", Emoji: "😔"},
	}
}
