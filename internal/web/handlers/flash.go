package handlers

import (
	"net/http"
	"net/url"
)

const (
	flashCookieName     = "flash"
	flashTypeCookieName = "flash_type"
	flashTypeError      = "error"
	flashTypeSuccess    = "success"
	flashPath           = "/admin"
)

func setFlashError(w http.ResponseWriter, message string, secure bool) {
	setFlash(w, message, flashTypeError, secure)
}

func setFlashSuccess(w http.ResponseWriter, message string, secure bool) {
	setFlash(w, message, flashTypeSuccess, secure)
}

func setFlash(w http.ResponseWriter, message, flashType string, secure bool) {
	if message == "" {
		return
	}
	if flashType != flashTypeSuccess {
		flashType = flashTypeError
	}

	http.SetCookie(w, flashCookie(flashCookieName, url.QueryEscape(message), secure))
	http.SetCookie(w, flashCookie(flashTypeCookieName, flashType, secure))
}

// consumeFlash reads and clears the pending flash message.
func consumeFlash(w http.ResponseWriter, r *http.Request, secure bool) (message, flashType string) {
	msgCookie, err := r.Cookie(flashCookieName)
	if err != nil || msgCookie.Value == "" {
		return "", ""
	}

	message, err = url.QueryUnescape(msgCookie.Value)
	if err != nil {
		message = msgCookie.Value
	}

	flashType = flashTypeError
	if typeCookie, err := r.Cookie(flashTypeCookieName); err == nil && typeCookie.Value == flashTypeSuccess {
		flashType = flashTypeSuccess
	}

	expired := flashCookie(flashCookieName, "", secure)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	expired = flashCookie(flashTypeCookieName, "", secure)
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	return message, flashType
}

func flashCookie(name, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     flashPath,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// withFlash copies the pending flash message into template data.
func withFlash(w http.ResponseWriter, r *http.Request, secure bool, data map[string]any) map[string]any {
	if msg, kind := consumeFlash(w, r, secure); msg != "" {
		data["Flash"] = msg
		data["FlashType"] = kind
	}
	return data
}
