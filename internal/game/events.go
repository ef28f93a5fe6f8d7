package game

type RandomEvent struct {
	Text        string `json:"text"`
	EnergyDelta int    `json:"energy_delta"`
}

var DefaultEvents = []RandomEvent{
	{Text: "Advisor Meeting!\n-10 Energy", EnergyDelta: -10},
	{Text: "Lab Equipment Broke!\n-15 Energy", EnergyDelta: -15},
	{Text: "Free Pizza!\n+50 Energy", EnergyDelta: 50},
	{Text: "Reviewer #2 Rejected!\nLost confidence", EnergyDelta: -5},
}
