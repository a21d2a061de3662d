// Package router maps address fragments to pages and guards the profile page.
package router

import (
	"strings"
	"sync"

	"bookswap/internal/app/state"
)

// Address is the host's location bar: the fragment after '#'.
type Address interface {
	Fragment() string
	SetFragment(fragment string)
}

// Painter repaints the regions the router controls.
type Painter interface {
	Header()
	Page(page state.Page)
}

// MemoryAddress is an Address held in memory, used when no browser drives the client.
type MemoryAddress struct {
	mu       sync.Mutex
	fragment string
}

// NewMemoryAddress returns an address starting at fragment.
func NewMemoryAddress(fragment string) *MemoryAddress {
	return &MemoryAddress{fragment: fragment}
}

func (a *MemoryAddress) Fragment() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.fragment
}

func (a *MemoryAddress) SetFragment(fragment string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.fragment = fragment
}

// Resolve returns the page for fragment. The profile page needs a session;
// anything unknown lands on home.
func Resolve(fragment string, authenticated bool) state.Page {
	route := strings.TrimPrefix(fragment, "#")
	route = strings.TrimPrefix(route, "/")

	switch state.Page(route) {
	case state.PageLogin:
		return state.PageLogin
	case state.PageSignup:
		return state.PageSignup
	case state.PageProfile:
		if authenticated {
			return state.PageProfile
		}

		return state.PageHome
	default:
		return state.PageHome
	}
}

// Router drives page transitions. It must only be used from loop tasks.
type Router struct {
	state   *state.State
	address Address
	painter Painter
}

// New creates a router.
func New(st *state.State, address Address, painter Painter) *Router {
	return &Router{state: st, address: address, painter: painter}
}

// Handle repaints the header and the page the current address resolves to.
func (r *Router) Handle() {
	r.state.Loading = true
	r.painter.Header()

	page := Resolve(r.address.Fragment(), r.state.Authenticated())
	r.state.CurrentPage = page
	r.painter.Page(page)

	r.state.Loading = false
}

// Navigate moves the address to target and handles it immediately.
func (r *Router) Navigate(target string) {
	r.address.SetFragment(target)
	r.Handle()
}

// HashChanged handles a fragment change made outside the client, such as the back button.
func (r *Router) HashChanged(fragment string) {
	r.Navigate(fragment)
}
