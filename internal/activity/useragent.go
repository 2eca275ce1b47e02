package activity

import "strings"

// ClientInfo is the device class and browser family derived from a
// User-Agent header.
type ClientInfo struct {
	Device  string
	Browser string
}

const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"

	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"

	Unknown = "Unknown"
)

// ClassifyUserAgent maps a raw User-Agent string to a device class and a
// browser family with case-insensitive substring tests, first match wins.
// An absent header classifies as Unknown/Unknown. Total function, never errors.
func ClassifyUserAgent(userAgent string) ClientInfo {
	if userAgent == "" {
		return ClientInfo{Device: Unknown, Browser: Unknown}
	}

	ua := strings.ToLower(userAgent)
	info := ClientInfo{Device: DeviceDesktop, Browser: Unknown}

	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		info.Device = DeviceMobile
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		info.Device = DeviceTablet
	}

	switch {
	case strings.Contains(ua, "chrome"):
		info.Browser = BrowserChrome
	case strings.Contains(ua, "firefox"):
		info.Browser = BrowserFirefox
	case strings.Contains(ua, "safari"):
		info.Browser = BrowserSafari
	case strings.Contains(ua, "edge"):
		info.Browser = BrowserEdge
	case strings.Contains(ua, "opera"):
		info.Browser = BrowserOpera
	}

	return info
}
