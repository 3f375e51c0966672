package security

import (
	"net/http"
	"time"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

func setCookie(w http.ResponseWriter, name, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// SetAuthCookies attaches both tokens. Max ages mirror the token TTLs so the
// browser drops each cookie at the same boundary the token itself expires.
func SetAuthCookies(w http.ResponseWriter, access, refresh string, accessTTL, refreshTTL time.Duration, secure bool) {
	setCookie(w, AccessCookieName, access, int(accessTTL.Seconds()), secure)
	setCookie(w, RefreshCookieName, refresh, int(refreshTTL.Seconds()), secure)
}

// SetAccessCookie replaces only the access token, used by the refresh flow.
func SetAccessCookie(w http.ResponseWriter, access string, accessTTL time.Duration, secure bool) {
	setCookie(w, AccessCookieName, access, int(accessTTL.Seconds()), secure)
}

func ClearAuthCookies(w http.ResponseWriter, secure bool) {
	setCookie(w, AccessCookieName, "", -1, secure)
	setCookie(w, RefreshCookieName, "", -1, secure)
}

func ReadAccessToken(r *http.Request) (string, error) {
	c, err := r.Cookie(AccessCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func ReadRefreshToken(r *http.Request) (string, error) {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
