package nav

import "github.com/pkg/errors"

type Screen int

const (
	Landing Screen = iota
	Login
	Welcome
	Dashboard
)

func (s Screen) String() string {
	switch s {
	case Login:
		return "Login"
	case Welcome:
		return "Welcome"
	case Dashboard:
		return "Dashboard"
	default:
		return "Landing"
	}
}

// Pages reachable from the dashboard sidebar.
const (
	PageDashboard = "Dashboard"
	PageClass     = "Class"
	PageCalendar  = "Calendar"
	PageProgress  = "Progress"
	PageGroup     = "Group"
	PageSetting   = "Setting"
)

var pages = map[string]bool{
	PageDashboard: true,
	PageClass:     true,
	PageCalendar:  true,
	PageProgress:  true,
	PageGroup:     true,
	PageSetting:   true,
}

var (
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrUnknownPage       = errors.New("unknown page")
)

type (
	// State is a snapshot of the current view, consumed by page renderers.
	State struct {
		Screen     Screen `json:"screen"`
		ActivePage string `json:"active_page,omitempty"`
		Subject    string `json:"subject,omitempty"`  // SubjectDetail drill-down, from Class
		GroupID    string `json:"group_id,omitempty"` // GroupDetail drill-down, from Group
	}

	// Router decides which screen/page is visible. It is explicit in-app
	// state, not browser history: a fresh process always starts at Landing.
	Router struct {
		state State
	}
)

func NewRouter() *Router {
	return &Router{state: State{Screen: Landing}}
}

func (r *Router) State() State { return r.state }

// ShowLogin moves Landing -> Login (a role was picked on the landing screen).
func (r *Router) ShowLogin() error {
	if r.state.Screen != Landing {
		return ErrInvalidTransition
	}
	r.state = State{Screen: Login}
	return nil
}

// BackToLanding cancels the login form.
func (r *Router) BackToLanding() error {
	if r.state.Screen != Login {
		return ErrInvalidTransition
	}
	r.state = State{Screen: Landing}
	return nil
}

// ShowWelcome moves Login -> Welcome after a successful login.
func (r *Router) ShowWelcome() error {
	if r.state.Screen != Login {
		return ErrInvalidTransition
	}
	r.state = State{Screen: Welcome}
	return nil
}

// Continue moves Welcome -> Dashboard with the Dashboard page active.
func (r *Router) Continue() error {
	if r.state.Screen != Welcome {
		return ErrInvalidTransition
	}
	r.state = State{Screen: Dashboard, ActivePage: PageDashboard}
	return nil
}

// Navigate activates a sidebar page. Valid only on the Dashboard screen;
// it always succeeds for a known page and closes any open drill-down.
func (r *Router) Navigate(page string) error {
	if r.state.Screen != Dashboard {
		return ErrInvalidTransition
	}
	if !pages[page] {
		return ErrUnknownPage
	}
	r.state = State{Screen: Dashboard, ActivePage: page}
	return nil
}

// OpenSubject drills into a subject detail; only reachable from Class.
func (r *Router) OpenSubject(name string) error {
	if r.state.Screen != Dashboard || r.state.ActivePage != PageClass {
		return ErrInvalidTransition
	}
	r.state.Subject = name
	return nil
}

// OpenGroup drills into a group detail; only reachable from Group.
func (r *Router) OpenGroup(groupID string) error {
	if r.state.Screen != Dashboard || r.state.ActivePage != PageGroup {
		return ErrInvalidTransition
	}
	r.state.GroupID = groupID
	return nil
}

// Back closes an open drill-down, returning to its parent page.
func (r *Router) Back() error {
	if r.state.Screen != Dashboard || (r.state.Subject == "" && r.state.GroupID == "") {
		return ErrInvalidTransition
	}
	r.state.Subject = ""
	r.state.GroupID = ""
	return nil
}

// Logout resets the router to the landing screen from any state.
func (r *Router) Logout() {
	r.state = State{Screen: Landing}
}
