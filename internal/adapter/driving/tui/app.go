package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const footerHelp = "[::b]1-5[::-] pages  [::b]Tab[::-] filters  [::b]Esc[::-] menu  [::b]Ctrl+R[::-] refresh  [::b]q[::-] quit"

// page is one entry of the menu.
type page interface {
	name() string
	root() tview.Primitive
	// focus is the primitive that receives focus when the page is entered with Tab.
	focus() tview.Primitive
	refresh()
}

// Dashboard is the interactive dashboard. Every fetch runs off the event loop and
// its result is applied through queue.
type Dashboard struct {
	ctx    context.Context
	uc     *usecase.DashboardUseCase
	cfg    types.Config
	logger *slog.Logger

	app   *tview.Application
	queue func(func())

	header      *tview.TextView
	footer      *tview.TextView
	accountDrop *tview.DropDown
	syncing     bool
	menu        *tview.List
	pages       *tview.Pages
	all         []page
	current     page

	overview *overviewPage
	tagCost  *tagCostPage
	budgets  *budgetPage
	settings *settingsPage
	profile  *profilePage
}

// Run opens the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, uc *usecase.DashboardUseCase, cfg types.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	setupTheme()
	d := New(ctx, uc, cfg, logger)
	d.queue = func(f func()) { d.app.QueueUpdateDraw(f) }

	go func() {
		<-ctx.Done()
		d.app.Stop()
	}()
	go d.loadAccounts()

	if err := d.app.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// New builds the screen without starting it. Updates are applied synchronously until
// Run installs the event loop queue.
func New(ctx context.Context, uc *usecase.DashboardUseCase, cfg types.Config, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dashboard{
		ctx:    ctx,
		uc:     uc,
		cfg:    cfg,
		logger: logger.With("component", "tui"),
		app:    tview.NewApplication(),
		queue:  func(f func()) { f() },
	}

	d.header = tview.NewTextView().SetDynamicColors(true)
	d.header.SetText("[::b]AWS Cost Console[::-]  " + colorMuted + "loading accounts..." + colorReset)

	d.accountDrop = tview.NewDropDown().SetLabel("Account: ").SetFieldWidth(32)
	d.accountDrop.SetOptions([]string{"(none)"}, nil)

	d.footer = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	d.footer.SetBorder(true)
	d.footer.SetText(footerHelp)

	d.overview = newOverviewPage(d)
	d.tagCost = newTagCostPage(d)
	d.budgets = newBudgetPage(d)
	d.settings = newSettingsPage(d)
	d.profile = newProfilePage(d)
	d.all = []page{d.overview, d.tagCost, d.budgets, d.settings, d.profile}

	d.pages = tview.NewPages()
	d.menu = tview.NewList().ShowSecondaryText(false)
	d.menu.SetBorder(true).SetTitle(" Cost Console ")
	for i, p := range d.all {
		p := p
		d.pages.AddPage(p.name(), p.root(), true, i == 0)
		d.menu.AddItem(p.name(), "", rune('1'+i), func() { d.show(p) })
	}
	d.menu.AddItem("Quit", "", 'q', d.app.Stop)
	d.current = d.all[0]

	top := tview.NewFlex().
		AddItem(d.header, 0, 1, false).
		AddItem(d.accountDrop, 42, 0, false)
	top.SetBorder(true)

	grid := tview.NewGrid().
		SetRows(3, 0, 3).
		SetColumns(22, 0)
	grid.AddItem(top, 0, 0, 1, 2, 0, 0, false)
	grid.AddItem(d.menu, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(d.pages, 1, 1, 1, 1, 0, 0, false)
	grid.AddItem(d.footer, 2, 0, 1, 2, 0, 0, false)

	d.app.SetRoot(grid, true).SetFocus(d.menu)
	d.setupKeyBindings()
	return d
}

func (d *Dashboard) setupKeyBindings() {
	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			d.app.SetFocus(d.menu)
			return nil
		case tcell.KeyCtrlR:
			d.current.refresh()
			return nil
		case tcell.KeyCtrlA:
			d.app.SetFocus(d.accountDrop)
			return nil
		case tcell.KeyTab:
			if d.app.GetFocus() == d.menu {
				d.app.SetFocus(d.current.focus())
				return nil
			}
		}
		if event.Rune() == 'q' && d.app.GetFocus() == d.menu {
			d.app.Stop()
			return nil
		}
		return event
	})
}

// show switches to p and refetches it.
func (d *Dashboard) show(p page) {
	d.current = p
	d.pages.SwitchToPage(p.name())
	p.refresh()
}

// loadAccounts runs once at startup, then renders the first page.
func (d *Dashboard) loadAccounts() {
	err := d.uc.Accounts().Load(d.ctx)
	d.queue(func() {
		d.syncAccounts()
		if err != nil {
			d.flashError(err)
		}
		d.current.refresh()
	})
}

// syncAccounts rebuilds the account dropdown from the account context.
func (d *Dashboard) syncAccounts() {
	accounts := d.uc.Accounts().Accounts()
	selected := d.uc.Accounts().Selected()

	d.syncing = true
	defer func() { d.syncing = false }()

	if len(accounts) == 0 {
		d.accountDrop.SetOptions([]string{"(none)"}, nil)
		d.accountDrop.SetCurrentOption(0)
		d.header.SetText("[::b]AWS Cost Console[::-]  " + colorWarning + tview.Escape(types.ErrNoAccountsFound.Error()) + colorReset)
		return
	}

	labels := make([]string, len(accounts))
	current := 0
	for i, a := range accounts {
		labels[i] = accountLabel(a)
		if a.ID == selected {
			current = i
		}
	}
	d.accountDrop.SetOptions(labels, d.onAccountSelected)
	d.accountDrop.SetCurrentOption(current)
	d.header.SetText("[::b]AWS Cost Console[::-]  " + colorMuted + fmt.Sprintf("%d account(s)", len(accounts)) + colorReset)
}

func (d *Dashboard) onAccountSelected(_ string, index int) {
	if d.syncing {
		return
	}
	accounts := d.uc.Accounts().Accounts()
	if index < 0 || index >= len(accounts) {
		return
	}
	if accounts[index].ID == d.uc.Accounts().Selected() {
		return
	}
	if err := d.uc.Accounts().Select(accounts[index].ID); err != nil {
		d.flashError(err)
		return
	}
	d.logger.Debug("account selected", "account", accounts[index].ID)
	d.current.refresh()
}

// selectedAccount returns the selected account, flashing why there is none.
func (d *Dashboard) selectedAccount() (*entity.AwsAccount, bool) {
	acc, err := d.uc.Accounts().RequireSelected()
	if err != nil {
		d.flashError(err)
		return nil, false
	}
	return acc, true
}

func (d *Dashboard) flash(msg string) {
	d.footer.SetText(colorNormal + tview.Escape(msg) + colorReset + "   " + footerHelp)
}

func (d *Dashboard) flashError(err error) {
	d.footer.SetText(colorCritical + tview.Escape(types.ErrorMessage(err)) + colorReset + "   " + footerHelp)
}

// async runs fn off the event loop and applies its UI changes through the queue.
func (d *Dashboard) async(fn func(ctx context.Context) func()) {
	go func() {
		if apply := fn(d.ctx); apply != nil {
			d.queue(apply)
		}
	}()
}
