package monitor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/umputun/changewatch/pkg/domain"
)

// MonitoringState is the desired scheduler state derived from settings
type MonitoringState struct {
	ShouldRun  bool
	IntervalMs int64
}

// DeriveMonitoringState combines the enabled flag and interval settings into the desired scheduler state.
// Missing or unparsable interval falls back to defaultIntervalMs.
func DeriveMonitoringState(settings map[string]string, defaultIntervalMs int64) MonitoringState {
	interval := defaultIntervalMs
	if v, ok := settings[domain.SettingCheckInterval]; ok && strings.TrimSpace(v) != "" {
		if ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			interval = ms
		}
	}
	enabled := settings[domain.SettingEmailEnabled] == "true"
	return MonitoringState{ShouldRun: enabled && interval > 0, IntervalMs: interval}
}

// well-known intervals in minutes and their cron expressions
var scheduleTable = map[int64]string{
	1:     "* * * * *",
	5:     "*/5 * * * *",
	15:    "*/15 * * * *",
	30:    "*/30 * * * *",
	60:    "0 * * * *",
	360:   "0 */6 * * *",
	720:   "0 */12 * * *",
	1440:  "0 0 * * *",
	10080: "0 0 * * 0",
	20160: "0 0 1,15 * *",
}

// IntervalToSchedule maps an interval in milliseconds to a cron expression.
// Returns false for zero or negative intervals, meaning scheduling is disabled.
func IntervalToSchedule(intervalMs int64) (string, bool) {
	if intervalMs <= 0 {
		return "", false
	}
	minutes := int64(math.Round(float64(intervalMs) / 60000))
	if intervalMs%60000 == 0 {
		if expr, ok := scheduleTable[minutes]; ok {
			return expr, true
		}
	}
	return fmt.Sprintf("@every %dm", max(minutes, 1)), true
}
