package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"smoothies/internal/service"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d6336c"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e8a317"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e03131"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2f9e44")).Bold(true)
)

func printItem(w io.Writer, item service.ItemResult) {
	fmt.Fprintln(w, titleStyle.Render(item.Fruit+" Nutrition Information"))
	switch item.Kind {
	case service.ItemWarning:
		fmt.Fprintln(w, warningStyle.Render(item.Message))
	case service.ItemError:
		fmt.Fprintln(w, errorStyle.Render(item.Message))
	default:
		fmt.Fprintf(w, "The search value for %s is %s.\n", item.Fruit, item.SearchKey)
		if item.View != nil {
			fmt.Fprintln(w, renderView(*item.View))
		}
	}
}

func renderView(v service.View) string {
	if v.Kind != service.ViewTable {
		return v.Text
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(v.Columns...).
		Rows(v.Rows...).
		String()
}
