package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/subcommands"

	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/renderer"
)

type watchCmd struct {
	configFlags
	interval time.Duration
}

func (*watchCmd) Name() string { return "watch" }
func (*watchCmd) Synopsis() string {
	return "keep the portfolio summary on screen, refreshing continuously"
}
func (*watchCmd) Usage() string {
	return `stockwatch watch [-config <path>] [-currency <code>] [-interval <duration>]

  Renders the live portfolio summary and refreshes it on a fixed cadence
  until interrupted. While a refresh is in flight the previous complete
  summary stays on screen; a half-fetched cycle is never displayed.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.DurationVar(&c.interval, "interval", 5*time.Second, "Delay between refresh cycles.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	engine := c.newEngine()
	if err := engine.ValidateCurrency(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newWatchModel(ctx, cancel, engine, c.interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("stopped watching.")
	return subcommands.ExitSuccess
}

// Messages.
type refreshMsg struct{}

type rowMsg struct{ done, total int }

type cycleMsg struct{ snapshot stockwatch.Snapshot }

// watchModel keeps two views of the world: the last published snapshot,
// shown on screen, and a progress counter for the cycle in flight. The
// snapshot reference is swapped only when a cycle completes, so the display
// never regresses to a half-populated table.
type watchModel struct {
	ctx      context.Context
	cancel   context.CancelFunc
	engine   *stockwatch.Engine
	interval time.Duration

	spin     spinner.Model
	snapshot *stockwatch.Snapshot
	fetching bool
	done     int
	total    int

	// updates carries progress and completion messages out of the cycle
	// goroutine into the bubbletea loop.
	updates chan tea.Msg
}

func newWatchModel(ctx context.Context, cancel context.CancelFunc, engine *stockwatch.Engine, interval time.Duration) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return watchModel{
		ctx:      ctx,
		cancel:   cancel,
		engine:   engine,
		interval: interval,
		spin:     s,
		fetching: true,
		updates:  make(chan tea.Msg, 64),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startCycle(), m.nextUpdate())
}

// startCycle launches one refresh cycle in its own goroutine; its progress
// and final snapshot arrive through the updates channel.
func (m watchModel) startCycle() tea.Cmd {
	ctx, engine, updates := m.ctx, m.engine, m.updates
	return func() tea.Msg {
		go func() {
			snapshot := engine.RunCycle(ctx, func(_ stockwatch.SummaryRow, done, total int) {
				updates <- rowMsg{done: done, total: total}
			})
			updates <- cycleMsg{snapshot: snapshot}
		}()
		return nil
	}
}

// nextUpdate waits for the next message from the in-flight cycle.
func (m watchModel) nextUpdate() tea.Cmd {
	updates := m.updates
	return func() tea.Msg { return <-updates }
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case rowMsg:
		m.done, m.total = msg.done, msg.total
		return m, m.nextUpdate()

	case cycleMsg:
		m.snapshot = &msg.snapshot
		m.fetching = false
		return m, tea.Batch(
			m.nextUpdate(),
			tea.Tick(m.interval, func(time.Time) tea.Msg { return refreshMsg{} }),
		)

	case refreshMsg:
		m.fetching = true
		m.done, m.total = 0, 0
		return m, tea.Batch(m.spin.Tick, m.startCycle())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	if m.snapshot != nil {
		b.WriteString(renderer.Summary(m.snapshot))
	}

	var status string
	switch {
	case m.fetching && m.total > 0:
		status = fmt.Sprintf("%srefreshing %d/%d  (q to quit)", m.spin.View(), m.done, m.total)
	case m.fetching:
		status = fmt.Sprintf("%sfetching quotes  (q to quit)", m.spin.View())
	default:
		status = fmt.Sprintf("updated %s  (q to quit)", m.snapshot.At.Format("15:04:05"))
	}
	b.WriteString(renderer.Status(status))
	b.WriteString("\n")
	return b.String()
}
