package videos

import (
	"regexp"

	"github.com/vidshelf/backend/internal/models"
)

// classifierRule pairs the pattern that recognizes a provider's domain with
// the pattern that pulls the provider's video identifier out of the URL.
// Keeping both in one rule keeps recognition and extraction in lockstep.
type classifierRule struct {
	videoType models.VideoType
	match     *regexp.Regexp
	extract   *regexp.Regexp
}

// Rules are evaluated in order; the first domain match decides the type.
var classifierRules = []classifierRule{
	{
		videoType: models.VideoTypeYouTube,
		match:     regexp.MustCompile(`youtube\.com|youtu\.be`),
		extract:   regexp.MustCompile(`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	},
	{
		videoType: models.VideoTypeVimeo,
		match:     regexp.MustCompile(`vimeo\.com`),
		extract:   regexp.MustCompile(`vimeo\.com(?:/channels/\w+)?/(\d+)`),
	},
}

// Classify determines which provider hosts the given URL and extracts the
// provider-assigned video identifier. Unrecognized URLs yield
// models.VideoTypeOther and an empty identifier. The identifier may also be
// empty for a recognized domain whose URL shape carries no extractable id.
// Classify is pure and never fails.
func Classify(url string) (models.VideoType, string) {
	for _, rule := range classifierRules {
		if !rule.match.MatchString(url) {
			continue
		}
		if m := rule.extract.FindStringSubmatch(url); m != nil {
			return rule.videoType, m[1]
		}
		return rule.videoType, ""
	}
	return models.VideoTypeOther, ""
}
