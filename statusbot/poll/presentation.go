package poll

import (
	"github.com/smell-of-curry/statusbot/statusbot/gamedig"
	"github.com/smell-of-curry/statusbot/statusbot/locale"
)

// Presentation is what a single poll cycle shows as presence. It is either
// known, carrying player counts and the map, or unknown.
type Presentation struct {
	Known      bool
	Players    int
	MaxPlayers int
	Map        string
}

// Unknown is shown when the server status could not be obtained.
var Unknown = Presentation{}

// Known builds the presentation of a successfully fetched status.
func Known(st gamedig.Status) Presentation {
	return Presentation{
		Known:      true,
		Players:    st.PlayerCount(),
		MaxPlayers: st.MaxPlayers,
		Map:        st.Map,
	}
}

// Label formats p as the presence text, "<players>/<max> - <map>" when
// known and the "server not found" sentinel otherwise.
func Label(p Presentation) string {
	if !p.Known {
		return locale.Translate("presence.unknown")
	}
	return locale.Translate("presence.known", p.Players, p.MaxPlayers, p.Map)
}

// UnknownLabel returns the sentinel presence text.
func UnknownLabel() string {
	return Label(Unknown)
}
