package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCrew     = "\U000F0849" // 󰡉
	IconLayers   = "\uf5fd"
	IconSparkles = "\uf890"
	IconList     = "\uf03a"
)

// Status icons
var (
	IconPending   = "◷"
	IconRunning   = "◐"
	IconCompleted = "✔"
	IconFailed    = "✘"
	IconIdle      = "○"
)

// Notification icons
var (
	IconNotifyInfo    = "ℹ"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✘"
)

// Selection markers
var (
	IconChecked   = "◉"
	IconUnchecked = "○"
	IconCursor    = "▌"
)

// SpinnerFrames animate running crews.
var SpinnerFrames = []string{"◐", "◓", "◑", "◒"}
