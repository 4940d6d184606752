package renderer

import (
	"net/http"
	"strings"
)

// BrowserProfile is the identity a backend presents to the audited site
type BrowserProfile struct {
	Name            string
	UserAgent       string
	AcceptLanguage  string
	Accept          string
	SecChUAPlatform string
	SecChUAMobile   string
	WindowWidth     int
	WindowHeight    int
}

var (
	// DesktopProfile is Chrome on Windows, the default audit platform
	DesktopProfile = BrowserProfile{
		Name:            "PC",
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		AcceptLanguage:  "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		SecChUAPlatform: `"Windows"`,
		SecChUAMobile:   "?0",
		WindowWidth:     1920,
		WindowHeight:    1080,
	}

	// MobileProfile is Chrome on Android
	MobileProfile = BrowserProfile{
		Name:            "Mobile",
		UserAgent:       "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36",
		AcceptLanguage:  "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		SecChUAPlatform: `"Android"`,
		SecChUAMobile:   "?1",
		WindowWidth:     412,
		WindowHeight:    915,
	}
)

// ProfileFor picks the profile matching an audit platform name
func ProfileFor(platform string) BrowserProfile {
	if strings.EqualFold(platform, MobileProfile.Name) {
		return MobileProfile
	}
	return DesktopProfile
}

// ApplyHeaders sets the profile's request headers
func (p BrowserProfile) ApplyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", p.Accept)
	req.Header.Set("Accept-Language", p.AcceptLanguage)

	if p.SecChUAPlatform != "" {
		req.Header.Set("Sec-Ch-Ua-Platform", p.SecChUAPlatform)
	}
	if p.SecChUAMobile != "" {
		req.Header.Set("Sec-Ch-Ua-Mobile", p.SecChUAMobile)
	}
}

// primaryLanguage returns the first tag of the Accept-Language value
func (p BrowserProfile) primaryLanguage() string {
	lang, _, _ := strings.Cut(p.AcceptLanguage, ",")
	return lang
}
