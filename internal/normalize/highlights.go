package normalize

import (
	"sort"
	"strings"

	"mlb-scoreboard-service/internal/domain/media"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

const defaultRecapTitle = "Game Highlights"

// preferredPlaybacks are tried in order before falling back to any playable entry.
var preferredPlaybacks = []string{
	"HTTP_CLOUD_WIRED_720",
	"HTTP_CLOUD_MOBILE",
	"MP4_720K",
	"HTTP_CLOUD_TABLET",
}

// FindRecap ranks every content item (recap +2, highlight +1) and returns the
// first one with a playable URL.
func FindRecap(content *statsapi.ContentPayload) (media.Recap, bool) {
	items := contentItems(content)
	sort.SliceStable(items, func(i, j int) bool {
		return headlineScore(items[i].Headline) > headlineScore(items[j].Headline)
	})
	for _, item := range items {
		playbacks := item.Playbacks
		if len(playbacks) == 0 && item.Media != nil {
			playbacks = item.Media.Playbacks
		}
		if url := PickPlayback(playbacks); url != "" {
			title := item.Headline
			if title == "" {
				title = defaultRecapTitle
			}
			return media.Recap{Title: title, URL: url}, true
		}
	}
	return media.Recap{}, false
}

// PickPlayback returns the preferred playback URL, or "" when none is playable.
func PickPlayback(playbacks []statsapi.Playback) string {
	for _, name := range preferredPlaybacks {
		for _, p := range playbacks {
			if p.Name == name && p.URL != "" {
				return p.URL
			}
		}
	}
	for _, p := range playbacks {
		if p.URL != "" {
			return p.URL
		}
	}
	return ""
}

func headlineScore(headline string) int {
	h := strings.ToLower(headline)
	score := 0
	if strings.Contains(h, "recap") {
		score += 2
	}
	if strings.Contains(h, "highlight") {
		score++
	}
	return score
}

// contentItems concatenates the three buckets in order without dedup. It
// returns a fresh slice so ranking never reorders the payload.
func contentItems(content *statsapi.ContentPayload) []statsapi.ContentItem {
	var items []statsapi.ContentItem
	if content == nil {
		return items
	}
	if h := content.Highlights; h != nil {
		if h.Highlights != nil {
			items = append(items, h.Highlights.Items...)
		}
		if h.Live != nil {
			items = append(items, h.Live.Items...)
		}
	}
	if e := content.Editorial; e != nil && e.Recap != nil && e.Recap.MLB != nil {
		items = append(items, e.Recap.MLB.Items...)
	}
	return items
}
