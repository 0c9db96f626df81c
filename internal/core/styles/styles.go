// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/crew"
)

// Banner is printed above interactive CLI forms.
const Banner = `  ▄▀█ █░█ █▀
  █▀█ ▀▀█ ▄█`

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	BannerStyle        lipgloss.Style
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Text styles.
	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSecondaryStyle      lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextSurfaceStyle        lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// TUI shared styles.
	HeaderStyle         lipgloss.Style
	LogoStyle           lipgloss.Style
	ViewSelectedStyle   lipgloss.Style
	ViewNormalStyle     lipgloss.Style
	ModalStyle          lipgloss.Style
	ModalTitleStyle     lipgloss.Style
	ModalHelpStyle      lipgloss.Style
	ConfirmMessageStyle lipgloss.Style
	FormErrorStyle      lipgloss.Style
	HelpBarStyle        lipgloss.Style

	// Help dialog.
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style

	// Task picker.
	TaskCardStyle         lipgloss.Style
	TaskCardSelectedStyle lipgloss.Style
	TaskCardCursorStyle   lipgloss.Style
	TaskTitleStyle        lipgloss.Style
	TaskTitleActiveStyle  lipgloss.Style
	SummaryStyle          lipgloss.Style

	// Crew cards.
	CrewCardStyle         lipgloss.Style
	CrewCardSelectedStyle lipgloss.Style
	CrewNameStyle         lipgloss.Style
	ChipStyle             lipgloss.Style
	ButtonStyle           lipgloss.Style
	ButtonDisabledStyle   lipgloss.Style
	EmptyStateStyle       lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextSurfaceStyle = lipgloss.NewStyle().Foreground(ColorSurface)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	HeaderStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	LogoStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginRight(2)
	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground).
		MarginBottom(1)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		MarginBottom(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	HelpBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	TaskCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	TaskCardSelectedStyle = TaskCardStyle.
		BorderForeground(ColorPrimary)
	TaskCardCursorStyle = TaskCardStyle.
		BorderForeground(ColorSecondary).
		BorderStyle(lipgloss.ThickBorder())
	TaskTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	TaskTitleActiveStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SummaryStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 2)

	CrewCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	CrewCardSelectedStyle = CrewCardStyle.
		BorderForeground(ColorPrimary)
	CrewNameStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	ChipStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorSurface).
		Padding(0, 1).
		MarginRight(1)
	ButtonStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 1)
	ButtonDisabledStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorSurface).
		Padding(0, 1)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(2, 4).
		Align(lipgloss.Center)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorPrimary).Foreground(ColorForeground)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning).Foreground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError).Foreground(ColorError)
}

// StatusStyle returns the badge style for a crew or execution status.
func StatusStyle(s crew.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch s.OrIdle() {
	case crew.StatusPending:
		return base.Foreground(ColorWarning)
	case crew.StatusRunning:
		return base.Foreground(ColorSecondary)
	case crew.StatusCompleted:
		return base.Foreground(ColorSuccess)
	case crew.StatusFailed:
		return base.Foreground(ColorError)
	default:
		return base.Foreground(ColorMuted)
	}
}

// StatusIcon returns the glyph shown next to a status label.
func StatusIcon(s crew.Status) string {
	switch s.OrIdle() {
	case crew.StatusPending:
		return IconPending
	case crew.StatusRunning:
		return IconRunning
	case crew.StatusCompleted:
		return IconCompleted
	case crew.StatusFailed:
		return IconFailed
	default:
		return IconIdle
	}
}

// RenderStatus renders an icon and label badge for s.
func RenderStatus(s crew.Status) string {
	return StatusStyle(s).Render(StatusIcon(s) + " " + s.Label())
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeCharm()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorSecondary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorSecondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorPrimary).Foreground(ColorBackground)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Background(ColorSurface).Foreground(ColorMuted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)

	return t
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	hex := string(c)
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
