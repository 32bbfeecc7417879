package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sardine/pkg/lot"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorTeal   = lipgloss.Color("36")  // actions, counts
	colorGreen  = lipgloss.Color("35")  // success, cached results
	colorAmber  = lipgloss.Color("220") // solver warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // suggested commands
	colorWhite  = lipgloss.Color("255") // paths and values
	colorGray   = lipgloss.Color("245") // labels
	colorDimmed = lipgloss.Color("240") // secondary text
)

var (
	styleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	styleDim       = lipgloss.NewStyle().Foreground(colorDimmed)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleLabel     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleWarning   = lipgloss.NewStyle().Foreground(colorAmber)
	styleCommand   = lipgloss.NewStyle().Foreground(colorBlue)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printKeyValue prints a labeled value in a fixed-width column.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// =============================================================================
// Lot Summary
// =============================================================================

// statsLine formats lot figures as "96 spots · 1 road · 12.5 m² per spot ·
// fresh". Areas in the lot are square centimetres.
func statsLine(st lot.Stats, cached bool) string {
	parts := []string{
		styleHighlight.Render(plural(st.Spots, "spot")),
	}
	if st.Roads > 0 {
		parts = append(parts, styleDim.Render(plural(st.Roads, "road")))
	}
	if st.Spots > 0 {
		parts = append(parts, styleDim.Render(fmt.Sprintf("%.1f m² per spot", st.AreaPerSpot/1e4)))
	}
	if st.Area > 0 {
		parts = append(parts, styleDim.Render(fmt.Sprintf("%.0f%% stalls", 100*st.SpotArea/st.Area)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	return strings.Join(parts, styleDim.Render(" · "))
}

func printStats(st lot.Stats, cached bool) {
	fmt.Println("  " + statsLine(st, cached))
}

// printWarnings lists what the solver recovered from, such as a skirt
// offset that collapsed.
func printWarnings(warnings []lot.Warning) {
	for _, w := range warnings {
		printWarning("%s %s", styleDim.Render(strings.ToLower(string(w.Code))), w.Message)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
