// Package display provides terminal formatting for txmail output.
package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Styles
	Muted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	Bold     = lipgloss.NewStyle().Bold(true)
	Success  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))

	expenseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	refundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	cashbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
)

// TypeDot returns a colored dot for a transaction type.
func TypeDot(typ string) string {
	switch typ {
	case "expense":
		return expenseStyle.Render("●")
	case "refund":
		return refundStyle.Render("○")
	case "cashback":
		return cashbackStyle.Render("○")
	default:
		return Dim.Render("·")
	}
}

// TypeLabel returns a styled, fixed-width transaction type label.
func TypeLabel(typ string) string {
	label := fmt.Sprintf("%-8s", strings.ToUpper(typ))
	switch typ {
	case "expense":
		return expenseStyle.Render(label)
	case "refund":
		return refundStyle.Render(label)
	case "cashback":
		return cashbackStyle.Render(label)
	default:
		return label
	}
}

// Rupee formats an amount with the ₹ sign, dropping trailing zeros.
func Rupee(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// AccountLabel returns a short label for an account.
// Derives the label from the domain (e.g., "user@example.com" -> "example").
func AccountLabel(account string) string {
	if idx := strings.Index(account, "@"); idx > 0 {
		domain := account[idx+1:]
		if dotIdx := strings.Index(domain, "."); dotIdx > 0 {
			return domain[:dotIdx]
		}
		return domain
	}
	return account
}

// TimeAgo formats an ISO date string as a relative time.
func TimeAgo(isoDate string) string {
	if isoDate == "" {
		return ""
	}

	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05", time.RFC3339Nano} {
		t, err = time.Parse(layout, isoDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return isoDate[:min(10, len(isoDate))]
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// Truncate shortens a string to maxLen, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// SuccessMsg prints a green checkmark + message.
func SuccessMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Success.Render("✓") + " " + msg)
}

// ErrorMsg prints a red X + message to stderr.
func ErrorMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrStyle.Render("✗")+" "+msg)
}

// Header prints a section header.
func Header(title string) {
	fmt.Println(Bold.Render(title))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
