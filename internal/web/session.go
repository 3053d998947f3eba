package web

import (
	"encoding/gob"
	"net/http"

	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/JonMunkholm/groupbuy/internal/web/templates"
	"github.com/gorilla/sessions"
)

const (
	sessionName  = "groupbuy-session"
	loggedInKey  = "logged_in"
	flashSuccess = "success"
	flashError   = "error"
)

func init() {
	gob.Register(templates.Flash{})
}

// session returns the request's session. Repeated calls during one request
// return the same *sessions.Session, so handlers may change Values and then
// call flashRedirect. A cookie that no longer decodes (e.g. after a key
// rotation) yields a fresh session.
func (s *Server) session(r *http.Request) *sessions.Session {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil {
		logging.FromContext(r.Context()).Debug("session: discarding undecodable cookie", "error", err)
	}
	return sess
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	if err := sess.Save(r, w); err != nil {
		logging.FromContext(r.Context()).Error("session: save failed", "error", err)
	}
}

// isAdmin reports whether the request carries a logged-in operator session.
func (s *Server) isAdmin(r *http.Request) bool {
	loggedIn, ok := s.session(r).Values[loggedInKey].(bool)
	return ok && loggedIn
}

// flashRedirect queues a message for the next page render and redirects to url.
func (s *Server) flashRedirect(w http.ResponseWriter, r *http.Request, kind, message, url string) {
	sess := s.session(r)
	sess.AddFlash(templates.Flash{Type: kind, Message: message})
	s.saveSession(w, r, sess)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// takeFlashes pops queued flashes. The session is saved so they are shown
// only once; call it before the response body is written.
func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []templates.Flash {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	s.saveSession(w, r, sess)

	var messages []templates.Flash
	for _, f := range raw {
		if fm, ok := f.(templates.Flash); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}
