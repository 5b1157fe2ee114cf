package middleware

import (
	"regexp"
	"strings"
)

// Input length limits. YouTube ids are 11 (video) and 24 (channel)
// characters; handles are at most 30 plus the sigil.
const (
	MaxVideoIDLen      = 16
	MaxChannelInputLen = 100
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// channelInputRe matches handles (with or without @), legacy usernames and channel ids.
	channelInputRe = regexp.MustCompile(`^@?[\p{L}\p{N}._-]+$`)
)

// ValidateVideoID checks that a video ID is well-formed.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "video_id is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "video_id must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "video_id contains invalid characters"
	}
	return id, ""
}

// ValidateChannelInput checks a channel handle, username or id.
func ValidateChannelInput(input string) (string, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "channel_input is required"
	}
	if len(input) > MaxChannelInputLen {
		return "", "channel_input must be at most 100 characters"
	}
	if !channelInputRe.MatchString(input) {
		return "", "channel_input contains invalid characters"
	}
	return input, ""
}
