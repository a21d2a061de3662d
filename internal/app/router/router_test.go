package router

import (
	"testing"

	"bookswap/internal/app/state"
	"bookswap/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		fragment      string
		authenticated bool
		want          state.Page
	}{
		{fragment: "", want: state.PageHome},
		{fragment: "#", want: state.PageHome},
		{fragment: "home", want: state.PageHome},
		{fragment: "login", want: state.PageLogin},
		{fragment: "#login", want: state.PageLogin},
		{fragment: "#/signup", want: state.PageSignup},
		{fragment: "profile", want: state.PageHome},
		{fragment: "profile", authenticated: true, want: state.PageProfile},
		{fragment: "#profile", authenticated: true, want: state.PageProfile},
		{fragment: "settings", authenticated: true, want: state.PageHome},
		{fragment: "loading", want: state.PageHome},
		{fragment: "LOGIN", want: state.PageHome},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.fragment, tt.authenticated))
		})
	}
}

type recordingPainter struct {
	st      *state.State
	calls   []string
	loading []bool
}

func (p *recordingPainter) Header() {
	p.calls = append(p.calls, "header")
	p.loading = append(p.loading, p.st.Loading)
}

func (p *recordingPainter) Page(page state.Page) {
	p.calls = append(p.calls, "page:"+string(page))
	p.loading = append(p.loading, p.st.Loading)
}

func TestRouter_NavigatePaintsHeaderThenPage(t *testing.T) {
	st := state.New()
	painter := &recordingPainter{st: st}
	address := NewMemoryAddress("")
	r := New(st, address, painter)

	r.Navigate("login")

	assert.Equal(t, []string{"header", "page:login"}, painter.calls)
	assert.Equal(t, []bool{true, true}, painter.loading)
	assert.False(t, st.Loading)
	assert.Equal(t, state.PageLogin, st.CurrentPage)
	assert.Equal(t, "login", address.Fragment())
}

func TestRouter_ProfileGuard(t *testing.T) {
	st := state.New()
	painter := &recordingPainter{st: st}
	r := New(st, NewMemoryAddress(""), painter)

	r.Navigate("profile")
	assert.Equal(t, state.PageHome, st.CurrentPage)

	st.CurrentUser = &entity.User{ID: "u1"}
	r.HashChanged("#profile")
	assert.Equal(t, state.PageProfile, st.CurrentPage)
}

func TestRouter_HandleRereadsAddress(t *testing.T) {
	st := state.New()
	painter := &recordingPainter{st: st}
	address := NewMemoryAddress("signup")
	r := New(st, address, painter)

	r.Handle()
	assert.Equal(t, state.PageSignup, st.CurrentPage)

	address.SetFragment("nowhere")
	r.Handle()
	assert.Equal(t, state.PageHome, st.CurrentPage)
}
