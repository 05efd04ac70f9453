package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/justsurfingit/jobhunt/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	jobStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	linkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func renderSummary(res *models.RunResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d jobs from %s", len(res.Jobs), res.Link)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("run %s, %d rows appended", res.RunID, res.RowsAppended)))

	for i, pj := range res.Jobs {
		b.WriteString("\n\n")
		b.WriteString(jobStyle.Render(fmt.Sprintf("%d. %s at %s", i+1, pj.Job.JobTitle, pj.Job.Company)))
		details := []string{}
		for _, v := range []string{string(pj.Job.JobType), pj.Job.Location, pj.Job.Salary} {
			if v != "" {
				details = append(details, v)
			}
		}
		if len(details) > 0 {
			b.WriteString("\n   " + mutedStyle.Render(strings.Join(details, " · ")))
		}
		if pj.CoverLetterLink != "" {
			b.WriteString("\n   " + linkStyle.Render(pj.CoverLetterLink))
		} else {
			b.WriteString("\n   " + mutedStyle.Render("no cover letter"))
		}
	}
	return boxStyle.Render(b.String())
}
