package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amarling/daybook/internal/config"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/storage"
	"github.com/amarling/daybook/internal/timeline"
	"github.com/amarling/daybook/internal/utils"
)

// Context is the shared state every command runs against.
type Context struct {
	Store  storage.Provider
	Engine *timeline.Engine
	Config config.Config
	// Owner is the acting user id; every fetch and write is scoped to it.
	Owner string
}

// Today resolves the current date in the configured timezone.
func (c *Context) Today() (string, error) {
	return utils.GetTodayInTimezone(c.Config.Timezone)
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday through 6=Saturday).
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}

	return days, nil
}

// PrintDayView renders a composed day as plain lines.
func PrintDayView(view models.DayView) {
	fmt.Printf("%s (%d items)\n", view.Date, len(view.Items))
	for _, item := range view.Items {
		slot := "--:--"
		if item.StartAt != nil {
			slot = item.StartAt.UTC().Format("15:04")
		}
		line := fmt.Sprintf("  %s  [%s] %s", slot, item.Kind, item.Title)
		if item.Status != "" {
			line += " (" + item.Status + ")"
		}
		fmt.Println(line)
	}
}
