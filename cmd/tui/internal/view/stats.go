package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/region"
	"github.com/kasayonetim/kasa/internal/stats"
	"github.com/kasayonetim/kasa/internal/transaction"
)

type StatsModel struct {
	CommonModel
	txService     *transaction.Service
	regionService *region.Service
	viewer        *profile.Profile

	breakdown *stats.Breakdown
	loading   bool
	err       error
}

func NewStatsModel(txSvc *transaction.Service, regionSvc *region.Service, viewer *profile.Profile) StatsModel {
	return StatsModel{
		txService:     txSvc,
		regionService: regionSvc,
		viewer:        viewer,
		loading:       true,
	}
}

func (m StatsModel) Title() string { return "Bölge İstatistikleri" }

func (m StatsModel) ShortHelp() string {
	return "Esc: geri | r: yenile"
}

type loadStatsMsg struct {
	breakdown stats.Breakdown
	err       error
}

func (m StatsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.ListForViewer(ctx, m.viewer, transaction.ListFilter{})
		if err != nil {
			return loadStatsMsg{err: err}
		}

		regions, err := m.regionService.List(ctx)
		if err != nil {
			return loadStatsMsg{err: err}
		}

		return loadStatsMsg{breakdown: stats.SummarizeByRegion(txs, regions)}
	}
}

func (m StatsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatsMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		b := msg.breakdown
		m.breakdown = &b

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var (
	statsTitleStyle  = lipgloss.NewStyle().Bold(true)
	statsRegionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	statsLabelStyle  = lipgloss.NewStyle().Faint(true).Width(18)
)

func renderSummary(s stats.Summary) string {
	var b strings.Builder

	rows := []struct {
		label string
		value string
	}{
		{"Toplam Gelir", FormatAmount(s.TotalIncome)},
		{"Nakit Gider", FormatAmount(s.CashExpenses)},
		{"K. Kartı Gider", FormatAmount(s.CardExpenses)},
		{"Toplam Gider", FormatAmount(s.TotalExpense)},
		{"Kasa Bakiyesi", FormatAmount(s.CashBalance)},
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s\n", statsLabelStyle.Render(row.label), row.value)
	}

	return b.String()
}

func (m StatsModel) View() string {
	if m.loading {
		return statsTitleStyle.Render(m.Title()) + "\n\nYükleniyor..."
	}

	if m.err != nil {
		return statsTitleStyle.Render(m.Title()) + "\n\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Hata: "+m.err.Error())
	}

	var b strings.Builder

	b.WriteString(statsTitleStyle.Render(m.Title()) + "\n\n")
	b.WriteString(statsRegionStyle.Render("Genel Toplam") + "\n")
	b.WriteString(renderSummary(m.breakdown.Totals) + "\n")

	for _, rs := range m.breakdown.Regions {
		b.WriteString(statsRegionStyle.Render(rs.Name) + "\n")
		b.WriteString(renderSummary(rs.Summary) + "\n")
	}

	if !m.breakdown.Unassigned.TotalIncome.IsZero() || !m.breakdown.Unassigned.TotalExpense.IsZero() {
		b.WriteString(statsRegionStyle.Render("Bölgesiz") + "\n")
		b.WriteString(renderSummary(m.breakdown.Unassigned) + "\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	return b.String()
}
