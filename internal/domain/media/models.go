package media

// Recap is a playable highlight video for a game.
type Recap struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
