package dto

type State struct {
	BPM             int
	BeatsPerMeasure int
	Running         bool
	CurrentBeat     int
	Volume          int
	Muted           bool
}
