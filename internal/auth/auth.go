package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"ems/internal/config"
	"ems/internal/nav"
	"ems/internal/repo"
)

const sessionName = "ems-session"

var Store *sessions.CookieStore

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("inactive user")
)

func InitAuth(cfg config.Config) {
	Store = NewStore(cfg.SessionSecret, cfg.SessionMaxAge, cfg.CookieSecure)
}

func NewStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

type User struct {
	ID    int64
	Email string
	Name  string
	Role  nav.Role
}

// Session is the snapshot the navigation shell reads. A nil user is an
// absent session.
func (u *User) Session() nav.Session {
	if u == nil {
		return nav.Session{}
	}
	return nav.Session{Name: u.Name, Role: u.Role}
}

type lookupFunc func(ctx context.Context, email string) (*repo.User, error)

func Authenticate(ctx context.Context, email, password string) (*User, error) {
	users := repo.User{}
	return authenticate(ctx, users.GetByEmail, email, password)
}

func authenticate(ctx context.Context, lookup lookupFunc, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	record, err := lookup(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if record.Status != "active" {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &User{
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Role:  nav.Role(record.Role),
	}, nil
}

func SetSession(w http.ResponseWriter, r *http.Request, user *User) error {
	session, _ := Store.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	session.Values["user_email"] = user.Email
	session.Values["user_name"] = user.Name
	session.Values["user_role"] = string(user.Role)
	return session.Save(r, w)
}

// SetName refreshes the display name held in the session.
func SetName(w http.ResponseWriter, r *http.Request, name string) error {
	session, _ := Store.Get(r, sessionName)
	session.Values["user_name"] = name
	return session.Save(r, w)
}

func ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := Store.Get(r, sessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func IsAuthenticated(r *http.Request) bool {
	_, ok := CurrentUser(r)
	return ok
}

// CurrentUser reads the identity stored by SetSession.
func CurrentUser(r *http.Request) (*User, bool) {
	session, _ := Store.Get(r, sessionName)
	id, ok := session.Values["user_id"].(int64)
	if !ok {
		return nil, false
	}
	email, _ := session.Values["user_email"].(string)
	name, _ := session.Values["user_name"].(string)
	role, _ := session.Values["user_role"].(string)
	return &User{ID: id, Email: email, Name: name, Role: nav.Role(role)}, true
}

// SessionStore returns the raw gorilla session, for values other than the
// identity (the CSRF token).
func SessionStore(r *http.Request) *sessions.Session {
	session, _ := Store.Get(r, sessionName)
	return session
}

// SessionReader supplies the identity snapshot for a request.
type SessionReader interface {
	Session(r *http.Request) nav.Session
}

type CookieSessions struct{}

func (CookieSessions) Session(r *http.Request) nav.Session {
	user, _ := CurrentUser(r)
	return user.Session()
}
