package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kasayonetim/kasa/cmd/tui/internal/view"
	"github.com/kasayonetim/kasa/internal/config"
	"github.com/kasayonetim/kasa/internal/database"
	"github.com/kasayonetim/kasa/internal/export"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/region"
	regionStore "github.com/kasayonetim/kasa/internal/region/store"
	"github.com/kasayonetim/kasa/internal/transaction"
	txStore "github.com/kasayonetim/kasa/internal/transaction/store"
)

type model struct {
	txService     *transaction.Service
	regionService *region.Service
	exportService *export.Service
	viewer        *profile.Profile

	currentView View

	transactionsView view.TransactionsModel
	statsView        view.StatsModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewStats        View = 2
	ViewExport       View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	regionSvc := region.NewService(regionStore.New(db))
	expSvc := export.NewService()

	// The TUI talks to the database directly, so it reads with an
	// operator-level profile rather than an end-user session.
	viewer := &profile.Profile{
		FullName: "Konsol Operatörü",
		Role:     profile.RoleAdmin,
	}

	return model{
		txService:        txSvc,
		regionService:    regionSvc,
		exportService:    expSvc,
		viewer:           viewer,
		currentView:      ViewMenu,
		transactionsView: view.NewTransactionsModel(txSvc, viewer),
		statsView:        view.NewStatsModel(txSvc, regionSvc, viewer),
		exportView:       view.NewExportModel(txSvc, expSvc, viewer),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.viewer)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.txService, m.regionService, m.viewer)

				return m, m.statsView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.txService, m.exportService, m.viewer)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Kasa Yönetim Konsolu\n\n" +
				"1. İşlemler\n" +
				"2. Bölge İstatistikleri\n" +
				"3. Excel Dışa Aktarım\n\n" +
				"q. Çıkış",
		)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
