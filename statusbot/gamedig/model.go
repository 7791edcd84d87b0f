package gamedig

// Player ...
type Player struct {
	Name string `json:"name"`
}

// Status is the status of a game server as reported by the status provider.
// It is a transient value: produced by a single Fetch and never mutated.
type Status struct {
	Name              string   `json:"name"`
	Map               string   `json:"map"`
	PasswordProtected bool     `json:"password"`
	Players           []Player `json:"players"`
	MaxPlayers        int      `json:"maxplayers"`
	Connect           string   `json:"connect"`
	Ping              int      `json:"ping"`
}

// PlayerCount returns the number of players currently on the server.
func (s Status) PlayerCount() int {
	return len(s.Players)
}

// wireStatus mirrors Status with pointers for the keys a usable response must carry.
type wireStatus struct {
	Name       string    `json:"name"`
	Map        *string   `json:"map"`
	Password   bool      `json:"password"`
	Players    *[]Player `json:"players"`
	MaxPlayers *int      `json:"maxplayers"`
	Connect    string    `json:"connect"`
	Ping       int       `json:"ping"`
}
