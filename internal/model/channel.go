package model

// channelUnknownStr is the string representation for unknown channel values.
const channelUnknownStr = "unknown"

// Channel is one of the Debian release channels compared against each
// other. The survey always walks the same package sample through every
// channel so the per-channel counters stay comparable.
type Channel string

// Release channel constants, oldest first.
const (
	// ChannelUnknown represents an unknown channel.
	ChannelUnknown Channel = ""
	// ChannelOldstable is the previous stable release.
	ChannelOldstable Channel = "oldstable"
	// ChannelStable is the current stable release.
	ChannelStable Channel = "stable"
	// ChannelUnstable is the rolling development release (sid).
	ChannelUnstable Channel = "unstable"
)

// String returns the string representation of the Channel.
func (c Channel) String() string {
	if c == ChannelUnknown {
		return channelUnknownStr
	}
	return string(c)
}

// IsValid returns true if this is a known channel.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelOldstable, ChannelStable, ChannelUnstable:
		return true
	default:
		return false
	}
}

// ParseChannel converts a string to a Channel.
func ParseChannel(s string) Channel {
	switch s {
	case "oldstable":
		return ChannelOldstable
	case "stable":
		return ChannelStable
	case "unstable":
		return ChannelUnstable
	default:
		return ChannelUnknown
	}
}

// DefaultChannels returns the three surveyed channels in release order,
// oldest first.
func DefaultChannels() []Channel {
	return []Channel{ChannelOldstable, ChannelStable, ChannelUnstable}
}
