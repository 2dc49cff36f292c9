package utils

import (
	"net/url"
	"regexp"
	"strings"
)

// LocationTypePhone marks a phone-based stage; any link is ignored for it.
const LocationTypePhone = "phone"

// providerSignatures maps link patterns to method labels. Order matters:
// the first matching entry wins.
var providerSignatures = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)zoom\.us|zoom\.com`), "Zoom"},
	{regexp.MustCompile(`(?i)zoomgov\.com`), "ZoomGov"},
	{regexp.MustCompile(`(?i)teams\.microsoft\.com|microsoft\.teams|live\.com/meet`), "Teams"},
	{regexp.MustCompile(`(?i)meet\.google\.com|hangouts\.google\.com|google\.com/hangouts|workspace\.google\.com/products/meet`), "Google Meet"},
	{regexp.MustCompile(`(?i)webex\.com|webex`), "Webex"},
	{regexp.MustCompile(`(?i)skype\.com`), "Skype"},
	{regexp.MustCompile(`(?i)bluejeans\.com`), "BlueJeans"},
	{regexp.MustCompile(`(?i)whereby\.com`), "Whereby"},
	{regexp.MustCompile(`(?i)jitsi\.org|meet\.jit\.si`), "Jitsi"},
	{regexp.MustCompile(`(?i)gotomeet|gotowebinar|goto\.com`), "GoToMeeting"},
	{regexp.MustCompile(`(?i)chime\.aws|amazonchime\.com`), "Amazon Chime"},
	{regexp.MustCompile(`(?i)slack\.com`), "Slack"},
	{regexp.MustCompile(`(?i)discord\.(gg|com)`), "Discord"},
	{regexp.MustCompile(`(?i)facetime|apple\.com/facetime`), "FaceTime"},
	{regexp.MustCompile(`(?i)whatsapp\.com`), "WhatsApp"},
	{regexp.MustCompile(`(?i)(^|\.)8x8\.vc`), "8x8"},
	{regexp.MustCompile(`(?i)telegram\.(me|org)|(^|/)t\.me/`), "Telegram"},
	{regexp.MustCompile(`(?i)signal\.org`), "Signal"},
}

// InferStageMethod derives a communication-method label from a location type
// and meeting link. It never fails: malformed input degrades to "Link".
func InferStageMethod(locationType, link string) string {
	if locationType == LocationTypePhone {
		return "Phone"
	}
	if link == "" {
		return "Link"
	}

	host := hostnameOf(link)
	normalizedHost := strings.TrimPrefix(strings.ToLower(host), "www.")

	for _, sig := range providerSignatures {
		if sig.re.MatchString(normalizedHost) || sig.re.MatchString(link) {
			return sig.name
		}
	}
	return "Link"
}

// hostnameOf parses the link as a URL, retrying with an https:// prefix for
// scheme-less input. An unparseable link yields an empty hostname; the raw
// string is still matched against the signature table by the caller.
func hostnameOf(link string) string {
	if u, err := url.Parse(link); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	if u, err := url.Parse("https://" + link); err == nil {
		return u.Hostname()
	}
	return ""
}
