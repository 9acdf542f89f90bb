package dispatch

import (
	"sort"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// GroupByDay partitions subscribers by their personal current_day so the
// catalog is queried and AI content generated once per distinct day, not
// once per subscriber. Subscribers without a day default to 1.
func GroupByDay(subs []models.Subscriber) map[int][]models.Subscriber {
	groups := make(map[int][]models.Subscriber)
	for _, sub := range subs {
		day := sub.Day()
		groups[day] = append(groups[day], sub)
	}
	return groups
}

// GroupDays returns the distinct day keys in ascending order
func GroupDays(groups map[int][]models.Subscriber) []int {
	days := make([]int, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
