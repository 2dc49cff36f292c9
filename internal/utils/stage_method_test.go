package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferStageMethod_PhoneWinsOverLink(t *testing.T) {
	// A phone location ignores any link entirely
	assert.Equal(t, "Phone", InferStageMethod("phone", "https://zoom.us/j/123456"))
	assert.Equal(t, "Phone", InferStageMethod("phone", ""))
}

func TestInferStageMethod_EmptyLink(t *testing.T) {
	assert.Equal(t, "Link", InferStageMethod("", ""))
	assert.Equal(t, "Link", InferStageMethod("link", ""))
}

func TestInferStageMethod_KnownProviders(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://zoom.us/j/99887766", "Zoom"},
		{"https://us02web.zoom.us/j/99887766", "Zoom"},
		{"https://company.zoom.com/my/room", "Zoom"},
		{"https://teams.microsoft.com/l/meetup-join/abc", "Teams"},
		{"https://meet.google.com/abc-defg-hij", "Google Meet"},
		{"https://company.webex.com/meet/someone", "Webex"},
		{"https://join.skype.com/invite/xyz", "Skype"},
		{"https://bluejeans.com/123456", "BlueJeans"},
		{"https://whereby.com/my-room", "Whereby"},
		{"https://meet.jit.si/InterviewRoom", "Jitsi"},
		{"https://global.gotomeeting.com/join/123", "GoToMeeting"},
		{"https://app.chime.aws/meetings/123", "Amazon Chime"},
		{"https://company.slack.com/huddle/C01", "Slack"},
		{"https://discord.gg/abcdef", "Discord"},
		{"https://company.whatsapp.com/call", "WhatsApp"},
		{"https://8x8.vc/company/room", "8x8"},
		{"https://t.me/someone", "Telegram"},
		{"https://signal.org/call/xyz", "Signal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferStageMethod("link", tt.link), "link %q", tt.link)
	}
}

func TestInferStageMethod_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "Zoom", InferStageMethod("", "HTTPS://ZOOM.US/J/123"))
	assert.Equal(t, "Google Meet", InferStageMethod("", "MEET.GOOGLE.COM/abc"))
}

func TestInferStageMethod_SchemelessLink(t *testing.T) {
	// Scheme-less input is retried with an https:// prefix before matching
	assert.Equal(t, "Zoom", InferStageMethod("", "zoom.us/j/123456"))
	assert.Equal(t, "Teams", InferStageMethod("", "teams.microsoft.com/l/meetup-join/abc"))
}

func TestInferStageMethod_WWWPrefixStripped(t *testing.T) {
	assert.Equal(t, "Webex", InferStageMethod("", "https://www.webex.com/meet/x"))
}

func TestInferStageMethod_UnknownProviderFallsBack(t *testing.T) {
	assert.Equal(t, "Link", InferStageMethod("", "https://example.com/meeting"))
	assert.Equal(t, "Link", InferStageMethod("", "not a url at all"))
}

func TestInferStageMethod_FirstSignatureWins(t *testing.T) {
	// zoom.us matches before zoomgov in the signature table
	assert.Equal(t, "Zoom", InferStageMethod("", "https://zoom.us/zoomgov"))
}
