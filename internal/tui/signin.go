package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/session"
)

type signinModel struct {
	sess   *session.Session
	fields [2]field
	focus  int
	busy   bool
	alert  string
}

type signedInMsg struct{}

type signinFailedMsg struct {
	message string
}

func newSignin(sess *session.Session) signinModel {
	m := signinModel{sess: sess}
	m.fields[0] = field{label: "Email", focused: true}
	m.fields[1] = field{label: "Password", secret: true}
	return m
}

func (m signinModel) Update(msg tea.Msg) (signinModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signinFailedMsg:
		m.busy = false
		m.alert = msg.message
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down", "up":
			m.fields[m.focus].focused = false
			m.focus = (m.focus + 1) % len(m.fields)
			m.fields[m.focus].focused = true
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			email := m.fields[0].value
			password := m.fields[1].value
			if email == "" || password == "" {
				m.alert = "Email dan password wajib diisi."
				return m, nil
			}
			m.busy = true
			m.alert = ""
			sess := m.sess
			return m, func() tea.Msg {
				if err := sess.Login(context.Background(), email, password); err != nil {
					return signinFailedMsg{
						message: apiclient.Message(err, "Login gagal. Periksa email dan password kamu."),
					}
				}
				return signedInMsg{}
			}
		default:
			m.fields[m.focus].handleKey(msg)
		}
	}
	return m, nil
}

func (m signinModel) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b)
	fmt.Fprintln(b, "  Laundromat Admin — Masuk")
	fmt.Fprintln(b)
	for _, f := range m.fields {
		fmt.Fprintln(b, f.view())
	}
	fmt.Fprintln(b)
	if m.busy {
		fmt.Fprintln(b, "  Masuk...")
	}
	if m.alert != "" {
		fmt.Fprintf(b, "  ! %s\n", m.alert)
	}
	fmt.Fprintln(b, "\n  tab pindah kolom · enter masuk · ctrl+c berhenti")
	return b.String()
}
