package core

// Gender is a speaker's recorded gender label. The persisted tokens are
// single letters, matching the upstream annotation convention.
type Gender string

const (
	GenderFemale Gender = "f"
	GenderMale   Gender = "m"
)

// Recognized reports whether g is one of the two accepted gender values.
func (g Gender) Recognized() bool {
	return g == GenderFemale || g == GenderMale
}

// Sample is a single labeled audio sample. Only the identifiers travel
// through the pipeline; the audio content itself is a concern of whatever
// produced the sample stream.
type Sample struct {
	ID        string `json:"id" yaml:"id"`
	SpeakerID string `json:"speaker_id" yaml:"speaker_id"`
	Gender    Gender `json:"gender" yaml:"gender"`
}
