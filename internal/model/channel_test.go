package model

import (
	"reflect"
	"testing"
)

// TestChannelString tests the String method of Channel.
func TestChannelString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		channel  Channel
		expected string
	}{
		{ChannelOldstable, "oldstable"},
		{ChannelStable, "stable"},
		{ChannelUnstable, "unstable"},
		{ChannelUnknown, "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.channel.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.channel.String(), tc.expected)
			}
		})
	}
}

// TestParseChannel tests string conversion to Channel.
func TestParseChannel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Channel
	}{
		{"oldstable", ChannelOldstable},
		{"stable", ChannelStable},
		{"unstable", ChannelUnstable},
		{"sid", ChannelUnknown},
		{"", ChannelUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			if got := ParseChannel(tc.input); got != tc.expected {
				t.Errorf("ParseChannel(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestDefaultChannels tests the release ordering, oldest first.
func TestDefaultChannels(t *testing.T) {
	t.Parallel()

	want := []Channel{ChannelOldstable, ChannelStable, ChannelUnstable}
	if got := DefaultChannels(); !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultChannels() = %v, want %v", got, want)
	}
}

// TestChannelIsValid tests channel validity.
func TestChannelIsValid(t *testing.T) {
	t.Parallel()

	for _, ch := range DefaultChannels() {
		if !ch.IsValid() {
			t.Errorf("expected %q to be valid", ch)
		}
	}
	if ChannelUnknown.IsValid() {
		t.Error("expected unknown channel to be invalid")
	}
	if Channel("experimental").IsValid() {
		t.Error("expected experimental to be invalid")
	}
}
