// Package tui is the terminal dashboard: a root model owning navigation
// and the session gate, and one model per page. Pages are rebuilt on
// every navigation, so page data never survives leaving the page.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/session"
	"github.com/laundromat-id/adminctl/internal/stale"
)

// pageModel is the contract every page implements. capturing reports
// whether the page is in text-entry mode, in which case the root model
// keeps its navigation keys to itself.
type pageModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (pageModel, tea.Cmd)
	View() string
	capturing() bool
}

type pageID int

const (
	pageHome pageID = iota
	pagePOS
	pageHistories
	pageCustomers
	pagePackages
)

var pageNames = []string{"Dashboard", "Transaksi", "Riwayat", "Pelanggan", "Paket"}

// pageGuards holds one staleness guard per remote resource. They outlive
// the page models, so a response launched by an abandoned page carries a
// superseded ticket and is dropped by the page that replaced it.
type pageGuards struct {
	home      stale.Guard
	master    stale.Guard
	tx        stale.Guard
	customers stale.Guard
	packages  stale.Guard
}

type App struct {
	api    *apiclient.Client
	sess   *session.Session
	guards *pageGuards

	limit  int
	active pageID
	page   pageModel
	signin signinModel
}

func NewApp(api *apiclient.Client, sess *session.Session, pageLimit int) App {
	return App{
		api:    api,
		sess:   sess,
		guards: &pageGuards{},
		limit:  pageLimit,
		signin: newSignin(sess),
	}
}

type sessionProbedMsg struct {
	state session.State
}

type loggedOutMsg struct{}

// sessionExpiredMsg is emitted by a page when the server answers 401
// mid-session: the user is sent back to the sign-in screen.
type sessionExpiredMsg struct{}

// pageError turns a request error into banner text, or into the
// session-expired redirect when the session is gone.
func pageError(err error, fallback string) (string, tea.Cmd) {
	if apiclient.IsUnauthorized(err) {
		return "", func() tea.Msg { return sessionExpiredMsg{} }
	}
	return apiclient.Message(err, fallback), nil
}

func (a App) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionProbedMsg{state: a.sess.Probe(context.Background())}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionProbedMsg:
		if msg.state == session.Authenticated {
			return a.open(pageHome)
		}
		return a, nil

	case signedInMsg:
		return a.open(pageHome)

	case loggedOutMsg:
		a.page = nil
		a.signin = newSignin(a.sess)
		return a, nil

	case sessionExpiredMsg:
		a.sess.Expire()
		a.page = nil
		a.signin = newSignin(a.sess)
		a.signin.alert = "Sesi berakhir, silakan login ulang."
		return a, nil

	case tea.KeyMsg:
		switch a.sess.State() {
		case session.Checking:
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, nil
		case session.Anonymous:
			var cmd tea.Cmd
			a.signin, cmd = a.signin.Update(msg)
			return a, cmd
		}

		if a.page != nil && a.page.capturing() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "1":
			return a.open(pageHome)
		case "2":
			return a.open(pagePOS)
		case "3":
			return a.open(pageHistories)
		case "4":
			return a.open(pageCustomers)
		case "5":
			return a.open(pagePackages)
		case "ctrl+l":
			sess := a.sess
			return a, func() tea.Msg {
				sess.Logout(context.Background())
				return loggedOutMsg{}
			}
		}
	}

	if a.sess.State() == session.Anonymous {
		var cmd tea.Cmd
		a.signin, cmd = a.signin.Update(msg)
		return a, cmd
	}
	if a.page != nil {
		var cmd tea.Cmd
		a.page, cmd = a.page.Update(msg)
		return a, cmd
	}
	return a, nil
}

// open replaces the active page with a fresh model, discarding whatever
// the previous page had loaded.
func (a App) open(id pageID) (tea.Model, tea.Cmd) {
	a.active = id
	switch id {
	case pageHome:
		a.page = newHome(a.api, &a.guards.home)
	case pagePOS:
		a.page = newPOS(a.api, &a.guards.master)
	case pageHistories:
		a.page = newHistories(a.api, a.limit, &a.guards.tx)
	case pageCustomers:
		a.page = newCustomers(a.api, a.limit, &a.guards.customers)
	case pagePackages:
		a.page = newPackages(a.api, a.limit, &a.guards.packages)
	}
	return a, a.page.Init()
}

func (a App) View() string {
	switch a.sess.State() {
	case session.Checking:
		return "\n  Memeriksa sesi...\n"
	case session.Anonymous:
		return a.signin.View()
	}

	b := &strings.Builder{}
	fmt.Fprint(b, "  ")
	for i, name := range pageNames {
		if pageID(i) == a.active {
			fmt.Fprintf(b, "[%d %s]  ", i+1, name)
		} else {
			fmt.Fprintf(b, " %d %s   ", i+1, name)
		}
	}
	if user, ok := a.sess.CurrentUser(); ok {
		fmt.Fprintf(b, "| %s", user.Name)
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b)

	if a.page != nil {
		b.WriteString(a.page.View())
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, "  1-5 halaman · ctrl+l keluar · q berhenti")
	return b.String()
}
