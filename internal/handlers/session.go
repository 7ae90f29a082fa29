package handlers

import (
	"crypto/sha256"
	"io"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/hkdf"
)

// sessionKeys derives separate signing and encryption keys from the
// configured secret.
func sessionKeys(secret string) (authKey, encKey []byte) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("quoteboard session cookie"))
	authKey = make([]byte, 32)
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(r, authKey); err != nil {
		panic(err)
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		panic(err)
	}
	return authKey, encKey
}

func newCookieStore(secret string) cookie.Store {
	store := cookie.NewStore(sessionKeys(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	})
	return store
}

// addFlash queues a one-shot message for the next page render. Failing to
// save the session only loses the message.
func (h *Handler) addFlash(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg)
	if err := s.Save(); err != nil {
		h.log.Warn(c.Request.Context(), err, "could not save flash message")
	}
}

// takeFlashes pops the queued messages. If the session cannot be saved the
// same messages show up again on the next request.
func (h *Handler) takeFlashes(c *gin.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		h.log.Warn(c.Request.Context(), err, "could not clear flash messages")
	}

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
