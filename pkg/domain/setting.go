package domain

// setting keys known to the monitor
const (
	SettingEmailEnabled  = "emailNotificationsEnabled"
	SettingCheckInterval = "notificationCheckInterval" // milliseconds
	SettingVoice         = "notificationVoice"
	SettingEmail         = "notificationEmail" // overrides configured recipient
)

// IsMonitoringSetting reports whether changing the key affects the scheduler state
func IsMonitoringSetting(key string) bool {
	return key == SettingEmailEnabled || key == SettingCheckInterval
}

// MonitorStatus describes the scheduler and detection state
type MonitorStatus struct {
	Enabled            bool   `json:"enabled"`
	IntervalMs         int64  `json:"intervalMs"`
	LastKnownVersion   string `json:"lastKnownVersion"`
	IsRunning          bool   `json:"isRunning"`
	ScheduleExpression string `json:"scheduleExpression"`
}
