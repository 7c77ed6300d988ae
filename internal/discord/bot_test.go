package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestStripMention(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<@99> hello", "hello"},
		{"<@!99> hello", "hello"},
		{"hello <@99>", "hello"},
		{"<@99>", ""},
		{"no mention here", "no mention here"},
		{"  <@99>   spaced  ", "spaced"},
	}
	for _, tc := range cases {
		if got := StripMention(tc.in, "99"); got != tc.want {
			t.Errorf("StripMention(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMentionsUser(t *testing.T) {
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		Mentions: []*discordgo.User{{ID: "1"}, {ID: "99"}},
	}}
	if !mentionsUser(m, "99") {
		t.Fatalf("expected mention of 99")
	}
	if mentionsUser(m, "7") {
		t.Fatalf("did not expect mention of 7")
	}
}
