package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"psr/internal/domain"
)

// ErrorViewer displays failed tests in an interactive TUI
type ErrorViewer struct {
	source string // raw report the document was converted from
}

var _ Viewer = (*ErrorViewer)(nil)

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer() *ErrorViewer {
	return &ErrorViewer{}
}

// SetSource sets the raw report path shown in the header
func (ev *ErrorViewer) SetSource(path string) {
	ev.source = path
}

// View displays the failed results of doc. Marking a failure resolved is kept
// for the session only.
func (ev *ErrorViewer) View(doc *domain.Document) error {
	failures := doc.Failures()
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	resolved := make(map[int]bool)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i := range failures {
		list.AddItem(listItemText(failures[i], i, false), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := len(failures) - len(resolved)
		headerView.SetText(fmt.Sprintf(" Test Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(failures), unresolved))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(ev.formatFailureStats(failures[index]))
			detailsView.SetText(formatFailureDetails(failures[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					if resolved[index] {
						delete(resolved, index)
					} else {
						resolved[index] = true
					}
					list.SetItemText(index, listItemText(failures[index], index, resolved[index]), "")
					updateHeader()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(r domain.Result, index int, resolved bool) string {
	title := tview.Escape(r.Title)
	if resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, title)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, title)
}

// formatFailureDetails formats a failed result using tview color tags
func formatFailureDetails(r domain.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(r.Title))
	fmt.Fprintf(&b, "[cyan]File: %s[white]\n", tview.Escape(r.File))
	fmt.Fprintf(&b, "[cyan]Node ID: %s[white]\n", tview.Escape(r.TestID))
	fmt.Fprintf(&b, "[cyan]Duration: %dms[white]\n", r.Duration)
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "[cyan]Tags: %s[white]\n", tview.Escape(strings.Join(r.Tags, ", ")))
	}
	b.WriteString("\n")

	text := r.ErrorText()
	if text == "" {
		b.WriteString("[gray]No error details reported[white]\n")
		return b.String()
	}

	lines := strings.Split(text, "\n")
	b.WriteString("[yellow]Error:[white]\n")
	for i, line := range lines {
		if i == maxDetailLines {
			fmt.Fprintf(&b, "[gray]... and %d more lines[white]\n", len(lines)-maxDetailLines)
			break
		}
		b.WriteString(tview.Escape(line))
		b.WriteString("\n")
	}
	return b.String()
}

const maxDetailLines = 200

// formatFailureStats formats the stats header for a failed result
func (ev *ErrorViewer) formatFailureStats(r domain.Result) string {
	source := ev.source
	if source == "" {
		source = "report"
	}
	return fmt.Sprintf("[cyan]source:[white] %s\n[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n",
		tview.Escape(source), tview.Escape(r.File), tview.Escape(r.Title))
}
