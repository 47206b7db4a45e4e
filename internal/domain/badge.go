package domain

import "strings"

// Badge is a derived achievement computed from a user's completed-event
// history. Badges are never persisted; they are recomputed on every read.
// swagger:model Badge
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// MeritPointsPerEvent is the fixed reward for each completed, confirmed event.
const MeritPointsPerEvent = 5

// ecoKeywords mark environment-related events by title, case-insensitive.
var ecoKeywords = []string{"tree", "tasik", "clean", "environment"}

// CompletedConfirmed filters a user's enriched registration history down to
// entries that were confirmed and whose event has been completed. This is the
// input set for badge evaluation and merit points.
func CompletedConfirmed(regs []*Registration) []*Registration {
	var out []*Registration
	for _, r := range regs {
		if r.Status == RegistrationStatusConfirmed && r.EventStatus == EventStatusCompleted {
			out = append(out, r)
		}
	}
	return out
}

// MeritPoints returns the user's total merit stars for the given enriched
// registration history.
func MeritPoints(regs []*Registration) int {
	return MeritPointsPerEvent * len(CompletedConfirmed(regs))
}

// EvaluateBadges computes the user's badges from their enriched registration
// history. Each rule is independent; a user may hold zero, some, or all
// badges. Adding history never removes a badge.
func EvaluateBadges(regs []*Registration) []Badge {
	completed := CompletedConfirmed(regs)
	badges := []Badge{}

	if len(completed) >= 1 {
		badges = append(badges, Badge{
			ID:          "b_1",
			Name:        "First Step",
			Icon:        "\U0001F331",
			Description: "Joined your first UM event",
			Color:       "bg-green-100 text-green-800",
		})
	}

	for _, r := range completed {
		if strings.Contains(r.EventTitle, "KK") || strings.Contains(r.EventTitle, "College") {
			badges = append(badges, Badge{
				ID:          "b_2",
				Name:        "KK Spirit",
				Icon:        "\U0001F3E0",
				Description: "Active in Residential Colleges",
				Color:       "bg-blue-100 text-blue-800",
			})
			break
		}
	}

	for _, r := range completed {
		if containsEcoKeyword(r.EventTitle) {
			badges = append(badges, Badge{
				ID:          "b_3",
				Name:        "Eco Warrior",
				Icon:        "♻️",
				Description: "Helping UM go Green",
				Color:       "bg-emerald-100 text-emerald-800",
			})
			break
		}
	}

	return badges
}

func containsEcoKeyword(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range ecoKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
