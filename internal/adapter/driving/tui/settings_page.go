package tui

import (
	"context"

	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

const confirmPage = "confirm-delete"

// settingsPage gerencia as contas AWS cadastradas.
type settingsPage struct {
	d *Dashboard

	table     *tview.Table
	form      *tview.Form
	nameField *tview.InputField
	accessKey *tview.InputField
	secretKey *tview.InputField
	layout    *tview.Flex

	// editing is the id of the account loaded into the form, or "".
	editing string
}

func newSettingsPage(d *Dashboard) *settingsPage {
	p := &settingsPage{d: d}

	p.table = newTable("AWS Accounts")
	p.table.SetSelectedFunc(func(row, _ int) { p.edit(row) })

	p.nameField = tview.NewInputField().SetLabel("Name").SetFieldWidth(30)
	p.accessKey = tview.NewInputField().SetLabel("Access Key").SetFieldWidth(30)
	p.secretKey = tview.NewInputField().SetLabel("Secret Key").SetFieldWidth(30).SetMaskCharacter('*')

	p.form = tview.NewForm().
		AddFormItem(p.nameField).
		AddFormItem(p.accessKey).
		AddFormItem(p.secretKey).
		AddButton("Add", p.add).
		AddButton("Update", p.update).
		AddButton("Delete", p.confirmDelete).
		AddButton("Clear", p.clear)
	p.form.SetBorder(true).SetTitle(" Account ")

	p.layout = tview.NewFlex().
		AddItem(p.table, 0, 3, false).
		AddItem(p.form, 0, 2, false)
	return p
}

func (p *settingsPage) name() string { return "Accounts" }

func (p *settingsPage) root() tview.Primitive  { return p.layout }
func (p *settingsPage) focus() tview.Primitive { return p.table }

func (p *settingsPage) refresh() {
	p.d.async(func(ctx context.Context) func() {
		accounts, err := p.d.uc.SettingsView().ListAccounts(ctx)
		return func() {
			if err != nil {
				p.d.flashError(err)
				return
			}
			p.apply(usecase.SettingsResult{Accounts: accounts}, nil)
		}
	})
}

func (p *settingsPage) render() {
	populateTable(p.table, TableData{Rows: accountRows(p.d.uc.Accounts().Accounts())}, "No AWS accounts configured.")
}

// edit loads the account of a table row into the form.
func (p *settingsPage) edit(row int) {
	accounts := p.d.uc.Accounts().Accounts()
	if row < 1 || row > len(accounts) {
		return
	}
	acc := accounts[row-1]
	p.editing = acc.ID
	p.nameField.SetText(acc.Name)
	p.accessKey.SetText(acc.AccessKey)
	p.secretKey.SetText(acc.SecretKey)
	p.form.SetTitle(" Edit " + tview.Escape(acc.Name) + " ")
	p.d.app.SetFocus(p.form)
}

func (p *settingsPage) clear() {
	p.editing = ""
	p.nameField.SetText("")
	p.accessKey.SetText("")
	p.secretKey.SetText("")
	p.form.SetTitle(" Account ")
}

func (p *settingsPage) params() entity.AwsAccountCreateParams {
	return entity.AwsAccountCreateParams{
		Name:      p.nameField.GetText(),
		AccessKey: p.accessKey.GetText(),
		SecretKey: p.secretKey.GetText(),
	}
}

func (p *settingsPage) add() {
	params := p.params()
	if err := p.d.uc.SettingsView().ValidateAccount(params); err != nil {
		p.d.flashError(err)
		return
	}
	p.mutate(func(ctx context.Context) (usecase.SettingsResult, error) {
		return p.d.uc.SettingsView().AddAccount(ctx, params)
	})
}

func (p *settingsPage) update() {
	if p.editing == "" {
		p.d.flash("Select an account to update.")
		return
	}
	id, params := p.editing, p.params()
	if err := p.d.uc.SettingsView().ValidateAccount(params); err != nil {
		p.d.flashError(err)
		return
	}
	p.mutate(func(ctx context.Context) (usecase.SettingsResult, error) {
		return p.d.uc.SettingsView().UpdateAccount(ctx, id, params)
	})
}

func (p *settingsPage) confirmDelete() {
	if p.editing == "" {
		p.d.flash("Select an account to delete.")
		return
	}
	id := p.editing
	modal := tview.NewModal().
		SetText("Delete account " + tview.Escape(p.nameField.GetText()) + "?").
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			p.d.pages.RemovePage(confirmPage)
			p.d.app.SetFocus(p.table)
			if label != "Delete" {
				return
			}
			p.mutate(func(ctx context.Context) (usecase.SettingsResult, error) {
				return p.d.uc.SettingsView().DeleteAccount(ctx, id)
			})
		})
	p.d.pages.AddPage(confirmPage, modal, false, true)
	p.d.app.SetFocus(modal)
}

func (p *settingsPage) mutate(fn func(ctx context.Context) (usecase.SettingsResult, error)) {
	p.d.async(func(ctx context.Context) func() {
		res, err := fn(ctx)
		return func() { p.apply(res, err) }
	})
}

// apply shows the outcome of a mutation and pushes the new list to the account context.
func (p *settingsPage) apply(res usecase.SettingsResult, err error) {
	switch {
	case err != nil:
		p.d.flashError(err)
	case res.Message != "":
		p.d.flash(res.Message)
		p.clear()
	}
	if res.Accounts != nil {
		p.d.uc.Accounts().Replace(res.Accounts)
		p.d.syncAccounts()
	}
	p.render()
}
