package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dhollis/gridview/internal/comm"
	"github.com/dhollis/gridview/internal/config"
	"github.com/dhollis/gridview/internal/events"
	"github.com/dhollis/gridview/internal/focus"
	"github.com/dhollis/gridview/internal/grid/column"
	"github.com/dhollis/gridview/internal/grid/table"
	"github.com/dhollis/gridview/internal/render"
	"github.com/dhollis/gridview/internal/reorder"
	"github.com/dhollis/gridview/internal/resize"
	"github.com/dhollis/gridview/internal/script"
	"github.com/dhollis/gridview/internal/selection"
	"github.com/dhollis/gridview/internal/tooltip"
)

// ErrQuit is returned by Run when the user asked to exit.
var ErrQuit = errors.New("quit")

// Options configure the application.
type Options struct {
	// ConfigPath is the settings file, optional.
	ConfigPath string

	// DataPath is a CSV file to display; empty shows sample data.
	DataPath string

	// MessagesPath receives the outbound host messages as JSON lines,
	// optional.
	MessagesPath string

	// LogFile receives log output, optional.
	LogFile string

	// LogLevel is the minimum level logged.
	LogLevel string
}

// Application owns the widget's collaborators and the terminal event loop.
type Application struct {
	logger   *Logger
	settings config.Settings

	table      *table.Table
	selection  *selection.Manager
	focus      *focus.Manager
	resize     *resize.Controller
	reorder    *reorder.Controller
	tooltip    *tooltip.Manager
	bus        *comm.Bus
	dispatcher *events.Manager
	renderer   *render.Renderer
	input      *render.Input
	term       *render.Terminal

	formatters []*script.Formatter
	detachHost func()
	msgFile    *os.File
	stopping   atomic.Bool
}

// New builds a fully wired application.
func New(opts Options) (*Application, error) {
	a := &Application{logger: NewLogger(nil, ParseLogLevel(opts.LogLevel))}
	if opts.LogFile != "" {
		logger, err := OpenFileLogger(opts.LogFile, ParseLogLevel(opts.LogLevel))
		if err != nil {
			return nil, err
		}
		a.logger = logger
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	a.settings = settings

	headers, records, err := loadData(opts.DataPath)
	if err != nil {
		return nil, err
	}

	a.table = table.FromRecords(table.Config{
		DefaultColumnWidth: settings.DefaultColumnWidth,
		DefaultRowHeight:   settings.DefaultRowHeight,
		RowHeaderWidth:     6,
		HeaderHeight:       1,
	}, headers, records)

	a.selection = selection.NewManager()
	a.focus = focus.NewManager(a.table)
	a.resize = resize.NewController(a.table, settings.ResizeBand)
	a.reorder = reorder.NewController(a.table, settings.DragThreshold)
	a.bus = comm.NewBus()

	a.term, err = render.NewTerminal()
	if err != nil {
		return nil, fmt.Errorf("create terminal: %w", err)
	}
	a.renderer = render.NewRenderer(a.term.Screen(), a.table, a.selection, a.focus, a.reorder)
	a.tooltip = tooltip.NewManager(a.renderer, settings.HoverDelay)
	a.input = render.NewInput(a.table.Surface())

	if err := a.loadFormatters(); err != nil {
		return nil, err
	}

	a.dispatcher, err = events.New(events.Config{
		EmitDoubleClick:  settings.EmitDoubleClick,
		EmitActionDetail: settings.EmitActionDetail,
		AutoOpenURL:      settings.AutoOpenURL,
		DragThreshold:    settings.DragThreshold,
	}, events.Deps{
		Grid:      a.table,
		Selection: a.selection,
		Focus:     a.focus,
		Resize:    a.resize,
		Reorder:   a.reorder,
		Tooltip:   a.tooltip,
		Columns:   a.table,
		Bus:       a.bus,
		View:      a.renderer,
	}, a.input)
	if err != nil {
		return nil, err
	}

	if opts.MessagesPath != "" {
		f, err := os.OpenFile(opts.MessagesPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open messages file: %w", err)
		}
		a.msgFile = f
		a.detachHost = comm.NewHostChannel(f).Attach(a.bus, func(err error) {
			a.logger.Error("host channel: %v", err)
		})
	}

	a.logger.Info("initialized: %d rows, %d columns", a.table.RowCount(), a.table.ColumnCount())
	return a, nil
}

// loadFormatters compiles the configured Lua formatters and marks their
// columns as custom-rendered.
func (a *Application) loadFormatters() error {
	for name, path := range a.settings.Formatters {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read formatter %s: %w", name, err)
		}
		f, err := script.NewFormatter(string(src))
		if err != nil {
			return fmt.Errorf("formatter %s: %w", name, err)
		}
		a.formatters = append(a.formatters, f)
		a.renderer.SetFormatter(name, f)

		for _, col := range a.table.Columns().Columns() {
			if col.Name == name {
				col.Renderer = column.RendererCustom
				col.FormatterSrc = string(src)
			}
		}
	}
	return nil
}

// Run enters the terminal event loop until quit or error.
func (a *Application) Run() error {
	if err := a.term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer a.term.Shutdown()

	w, h := a.term.Size()
	a.table.SetViewport(w, h-1)
	a.renderer.SetStatus("arrows: move | enter: select | h/u/b: highlight | f: freeze | 0-9: precision | esc: quit")
	a.renderer.Draw()

	for {
		ev := a.term.PollEvent()
		if ev == nil {
			return nil
		}

		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			width, height := tev.Size()
			a.table.SetViewport(width, height-1)
		case *tcell.EventKey:
			if isQuitKey(tev) {
				return ErrQuit
			}
			a.input.Feed(ev)
		default:
			a.input.Feed(ev)
		}

		a.renderer.Draw()
	}
}

// isQuitKey recognizes the exit keys the grid itself never consumes.
func isQuitKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'q'
}

// Shutdown releases every resource. It is safe to call concurrently; the
// signal handler and the deferred call in main both reach it, and only the
// first caller runs the teardown.
func (a *Application) Shutdown() {
	if !a.stopping.CompareAndSwap(false, true) {
		return
	}

	if a.dispatcher != nil {
		a.dispatcher.Dispose()
	}
	if a.tooltip != nil {
		a.tooltip.Close()
	}
	if a.detachHost != nil {
		a.detachHost()
	}
	if a.msgFile != nil {
		a.msgFile.Close() //nolint:errcheck
	}
	for _, f := range a.formatters {
		f.Close()
	}
	if a.term != nil {
		a.term.Interrupt()
	}
	a.logger.Info("shut down")
}

// loadData reads a CSV file with a header row, or returns sample data when
// no path is given.
func loadData(path string) ([]string, [][]string, error) {
	if path == "" {
		return sampleData()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read data: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty data file")
	}
	return records[0], records[1:], nil
}

// sampleData returns a small demo table.
func sampleData() ([]string, [][]string, error) {
	headers := []string{"city", "population", "area", "density"}
	records := [][]string{
		{"Tokyo", "13960000", "2194", "6363"},
		{"Delhi", "31870000", "1484", "21476"},
		{"Shanghai", "24870000", "6341", "3922"},
		{"Sao Paulo", "12400000", "1521", "8152"},
		{"Mexico City", "9209000", "1485", "6201"},
		{"Cairo", "10100000", "3085", "3274"},
		{"Mumbai", "20960000", "603", "34759"},
		{"Beijing", "21890000", "16410", "1334"},
		{"Dhaka", "8906000", "306", "29105"},
		{"Osaka", "2753000", "225", "12235"},
	}
	return headers, records, nil
}
