package tui

import (
	"context"

	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

type profilePage struct {
	d *Dashboard

	user     *tview.TextView
	form     *tview.Form
	password *tview.InputField
	confirm  *tview.InputField
	layout   *tview.Flex
}

func newProfilePage(d *Dashboard) *profilePage {
	p := &profilePage{d: d}

	p.user = tview.NewTextView().SetDynamicColors(true)
	p.user.SetBorder(true).SetTitle(" Profile ")

	p.password = tview.NewInputField().SetLabel("New password").SetFieldWidth(30).SetMaskCharacter('*')
	p.confirm = tview.NewInputField().SetLabel("Confirm password").SetFieldWidth(30).SetMaskCharacter('*')
	p.form = tview.NewForm().
		AddFormItem(p.password).
		AddFormItem(p.confirm).
		AddButton("Update password", p.updatePassword).
		AddButton("Sign out", p.signOut)
	p.form.SetBorder(true).SetTitle(" Security ")

	p.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.user, 8, 0, false).
		AddItem(p.form, 0, 1, false)
	return p
}

func (p *profilePage) name() string           { return "Profile" }
func (p *profilePage) root() tview.Primitive  { return p.layout }
func (p *profilePage) focus() tview.Primitive { return p.form }

func (p *profilePage) refresh() {
	p.d.async(func(ctx context.Context) func() {
		user, err := p.d.uc.UserView().Get(ctx)
		return func() {
			if err != nil {
				p.d.flashError(err)
			}
			p.user.SetText(userText(user))
		}
	})
}

func (p *profilePage) updatePassword() {
	params := entity.UpdatePasswordParams{
		Password:        p.password.GetText(),
		ConfirmPassword: p.confirm.GetText(),
	}
	if err := p.d.uc.SettingsView().ValidatePassword(params); err != nil {
		p.d.flashError(err)
		return
	}
	p.d.async(func(ctx context.Context) func() {
		msg, err := p.d.uc.SettingsView().UpdatePassword(ctx, params)
		return func() {
			if err != nil {
				p.d.flashError(err)
				return
			}
			p.password.SetText("")
			p.confirm.SetText("")
			p.d.flash(msg)
		}
	})
}

func (p *profilePage) signOut() {
	p.d.async(func(ctx context.Context) func() {
		err := p.d.uc.UserView().SignOut(ctx)
		return func() {
			if err != nil {
				p.d.flashError(err)
				return
			}
			p.user.SetText(userText(nil))
			p.d.flash("Signed out.")
		}
	})
}
