package activity

import "testing"

func TestClassifyUserAgent_Device(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) Safari/604.1", DeviceMobile},
		{"Mozilla/5.0 (Linux; Android 13; Pixel 7) Chrome/114.0", DeviceMobile},
		{"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) Safari/604.1", DeviceTablet},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/114.0", DeviceDesktop},
	}

	for _, tc := range cases {
		got := ClassifyUserAgent(tc.ua)
		if got.Device != tc.want {
			t.Errorf("ClassifyUserAgent(%q).Device = %q, want %q", tc.ua, got.Device, tc.want)
		}
	}
}

func TestClassifyUserAgent_Browser(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 Chrome/114.0 Safari/537.36", BrowserChrome},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0", BrowserFirefox},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/16.5 Safari/605.1.15", BrowserSafari},
		{"some-strange-client/1.0", Unknown},
	}

	for _, tc := range cases {
		got := ClassifyUserAgent(tc.ua)
		if got.Browser != tc.want {
			t.Errorf("ClassifyUserAgent(%q).Browser = %q, want %q", tc.ua, got.Browser, tc.want)
		}
	}
}

// Safari claims chrome in many UA strings; chrome must win when both occur.
func TestClassifyUserAgent_ChromeBeatsSafari(t *testing.T) {
	got := ClassifyUserAgent("Mozilla/5.0 Chrome/114.0 Safari/537.36")
	if got.Browser != BrowserChrome {
		t.Errorf("Browser = %q, want %q", got.Browser, BrowserChrome)
	}
}

func TestClassifyUserAgent_Missing(t *testing.T) {
	got := ClassifyUserAgent("")
	if got.Device != Unknown || got.Browser != Unknown {
		t.Errorf("ClassifyUserAgent(\"\") = %+v, want Unknown/Unknown", got)
	}
}

// The classifier is deterministic: same input, same result, every call.
func TestClassifyUserAgent_Deterministic(t *testing.T) {
	ua := "Mozilla/5.0 (Linux; Android 13) Chrome/114.0 Mobile"
	first := ClassifyUserAgent(ua)
	for i := 0; i < 100; i++ {
		if got := ClassifyUserAgent(ua); got != first {
			t.Fatalf("call %d: got %+v, want %+v", i, got, first)
		}
	}
}
