package model

// DateLayout is the YYYY-MM-DD form every date string travels in.
const DateLayout = "2006-01-02"

const (
	SessionFocus      = "focus"
	SessionShortBreak = "short_break"
	SessionLongBreak  = "long_break"
)

const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultLongBreakInterval = 4
)

const (
	WelcomeFreezeGrant  = 2
	FreezeMilestoneDays = 21
	MaxFreezeBalance    = 10
)

type UserSettings struct {
	FocusDuration      int `json:"focusDuration"`
	ShortBreakDuration int `json:"shortBreakDuration"`
	LongBreakDuration  int `json:"longBreakDuration"`
	LongBreakInterval  int `json:"longBreakInterval"`
}

func DefaultSettings() UserSettings {
	return UserSettings{
		FocusDuration:      DefaultFocusMinutes,
		ShortBreakDuration: DefaultShortBreakMinutes,
		LongBreakDuration:  DefaultLongBreakMinutes,
		LongBreakInterval:  DefaultLongBreakInterval,
	}
}

// StreakData is the per-identity streak record. The zero value is the
// record of an identity that has never been active.
type StreakData struct {
	CurrentStreak   int    `json:"currentStreak"`
	LongestStreak   int    `json:"longestStreak"`
	LastActiveDate  string `json:"lastActiveDate"`
	FreezeBalance   int    `json:"freezeBalance"`
	FreezeUsedToday bool   `json:"freezeUsedToday"`
	FreezesEarned   int    `json:"freezesEarned"`
	LastEarnedDate  string `json:"-"`
	Version         int    `json:"version"`
}

type SessionRecord struct {
	ID          int64  `json:"id"`
	Duration    int    `json:"duration"`
	SessionType string `json:"sessionType"`
	DateString  string `json:"dateString"`
	Timestamp   int64  `json:"timestamp"`
}

type Goal struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	DailyTargetSessions int    `json:"dailyTargetSessions"`
	Active              bool   `json:"active"`
}

func IsValidSessionType(sessionType string) bool {
	return sessionType == SessionFocus || sessionType == SessionShortBreak || sessionType == SessionLongBreak
}
