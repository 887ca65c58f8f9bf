package view

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kasayonetim/kasa/internal/export"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/transaction"
)

type ExportModel struct {
	CommonModel
	txService *transaction.Service
	exporter  *export.Service
	viewer    *profile.Profile

	form    *huh.Form
	dir     string
	days    int
	done    bool
	written string
	err     error
}

func NewExportModel(txSvc *transaction.Service, exporter *export.Service, viewer *profile.Profile) ExportModel {
	m := ExportModel{
		txService: txSvc,
		exporter:  exporter,
		viewer:    viewer,
		dir:       ".",
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("dir").
				Title("Çıktı klasörü").
				Description("Excel dosyasının yazılacağı klasör").
				Value(&m.dir),
			huh.NewSelect[int]().
				Key("days").
				Title("Dönem").
				Options(
					huh.NewOption("Tümü", 0),
					huh.NewOption("Son 30 gün", 30),
					huh.NewOption("Son 90 gün", 90),
					huh.NewOption("Son 365 gün", 365),
				).
				Value(&m.days),
		),
	)

	return m
}

func (m ExportModel) Title() string { return "Excel Dışa Aktarım" }

func (m ExportModel) ShortHelp() string {
	return "Esc: geri"
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m ExportModel) exportCmd(dir string, days int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{
			SortBy:   transaction.SortByDate,
			SortDesc: true,
		}

		if days > 0 {
			start := time.Now().AddDate(0, 0, -days)
			filter.StartDate = &start
		}

		txs, err := m.txService.ListForViewer(ctx, m.viewer, filter)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		path := dir + string(os.PathSeparator) + m.exporter.Filename(time.Now())

		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("dosya oluşturulamadı: %w", err)}
		}
		defer f.Close()

		if err := m.exporter.Write(f, txs); err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path}
	}
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.done = true
		m.written = msg.path
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, Back
		}
	}

	if m.done {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.done = true
		return m, m.exportCmd(m.form.GetString("dir"), m.form.GetInt("days"))
	}

	return m, cmd
}

func (m ExportModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.Title())

	if m.err != nil {
		return title + "\n\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Hata: "+m.err.Error()) +
			"\n\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())
	}

	if m.written != "" {
		return title + "\n\nDosya yazıldı: " + m.written +
			"\n\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())
	}

	if m.done {
		return title + "\n\nYazılıyor..."
	}

	return title + "\n\n" + m.form.View()
}
