package syncer

import (
	"net/url"
	"sync"
)

const (
	dataParam = "data"
	langParam = "lang"
)

// Link is the shareable address of the current list: a URL whose
// "data" query parameter carries the encoded token. It is the CLI's
// stand-in for a browser location bar and is rewritten in place, never
// replaced, so unrelated parameters such as "lang" survive every
// update.
type Link struct {
	mu sync.Mutex
	u  *url.URL
}

// NewLink builds a link rooted at base, typically the configured share
// base URL.
func NewLink(base string) *Link {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "https", Host: "shoplist.app", Path: "/"}
	}
	return &Link{u: u}
}

// ParseLink accepts a full share URL. The raw string may also be a
// bare token, in which case it is attached to the default base.
func ParseLink(raw string) *Link {
	u, err := url.Parse(raw)
	if err == nil && u.Host != "" {
		return &Link{u: u}
	}
	l := NewLink("")
	l.SetData(raw)
	return l
}

// Data returns the encoded token carried by the link, or "".
func (l *Link) Data() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.Query().Get(dataParam)
}

// SetData replaces the token in place; an empty token removes the
// parameter so an empty list keeps the address clean.
func (l *Link) SetData(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.u.Query()
	if token == "" {
		q.Del(dataParam)
	} else {
		q.Set(dataParam, token)
	}
	l.u.RawQuery = q.Encode()
}

// Lang returns the language parameter, or "".
func (l *Link) Lang() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.Query().Get(langParam)
}

// SetLang pins the language parameter on the shared address.
func (l *Link) SetLang(lang string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.u.Query()
	if lang == "" {
		q.Del(langParam)
	} else {
		q.Set(langParam, lang)
	}
	l.u.RawQuery = q.Encode()
}

func (l *Link) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.String()
}
