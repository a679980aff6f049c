// Package router holds the screen for the view the application is in.
// Each view transition builds a fresh screen; input between transitions
// goes to that screen.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspark/internal/flow"
	"github.com/abhisek/mindspark/internal/screen"
)

// Router tracks the active screen and the view it was built for.
type Router struct {
	view   flow.State
	active screen.Screen
}

// New returns a Router showing s for view. Init is left to the caller's
// program start.
func New(view flow.State, s screen.Screen) *Router {
	return &Router{view: view, active: s}
}

// Show replaces the active screen and returns its Init command.
func (r *Router) Show(view flow.State, s screen.Screen) tea.Cmd {
	r.view = view
	r.active = s
	if s == nil {
		return nil
	}
	return s.Init()
}

// Current returns the view the active screen belongs to.
func (r *Router) Current() flow.State { return r.view }

// Showing reports whether the active screen belongs to any of views.
func (r *Router) Showing(views ...flow.State) bool {
	for _, v := range views {
		if r.view == v {
			return true
		}
	}
	return false
}

// Active returns the active screen, or nil.
func (r *Router) Active() screen.Screen { return r.active }

// Update forwards msg to the active screen and keeps the screen it returns.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen into the content area.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
