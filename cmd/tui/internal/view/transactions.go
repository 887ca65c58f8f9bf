package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/transaction"
)

// typeFilters cycles through all / income / expense.
var typeFilters = []*transaction.Type{
	nil,
	ptr(transaction.TypeIncome),
	ptr(transaction.TypeExpense),
}

func ptr[T any](v T) *T { return &v }

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service
	viewer    *profile.Profile

	table         table.Model
	txs           []*transaction.Transaction
	typeFilterIdx int
	loading       bool
	err           error
}

func NewTransactionsModel(txSvc *transaction.Service, viewer *profile.Profile) TransactionsModel {
	columns := []table.Column{
		{Title: "Tarih", Width: 12},
		{Title: "Başlık", Width: 32},
		{Title: "Bölge", Width: 16},
		{Title: "Tip", Width: 8},
		{Title: "Ödeme", Width: 12},
		{Title: "Tutar", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{
		txService: txSvc,
		viewer:    viewer,
		table:     t,
	}
}

func (m TransactionsModel) Title() string { return "İşlemler" }

func (m TransactionsModel) ShortHelp() string {
	return "Esc: geri | t: tip filtresi | r: yenile"
}

type loadTransactionsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	filter := transaction.ListFilter{
		Type:     typeFilters[m.typeFilterIdx],
		SortBy:   transaction.SortByDate,
		SortDesc: true,
		Limit:    500,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.ListForViewer(ctx, m.viewer, filter)

		return loadTransactionsMsg{txs: txs, err: err}
	}
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTransactionsMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.table.SetRows(toRows(msg.txs))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func toRows(txs []*transaction.Transaction) []table.Row {
	rows := make([]table.Row, len(txs))
	for i, tx := range txs {
		region := tx.RegionName
		if region == "" {
			region = "-"
		}

		rows[i] = table.Row{
			FormatDate(tx.Date),
			tx.Title,
			region,
			string(tx.Type),
			string(tx.PaymentMethod),
			FormatAmount(tx.Amount),
		}
	}

	return rows
}

func (m TransactionsModel) View() string {
	header := m.Title()

	if f := typeFilters[m.typeFilterIdx]; f != nil {
		header += fmt.Sprintf(" [%s]", *f)
	}

	if m.loading {
		header += " (yükleniyor...)"
	}

	body := m.table.View()
	if m.err != nil {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render("Hata: " + m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(header),
		body,
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)
}
