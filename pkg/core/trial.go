package core

import (
	"fmt"
	"strings"
)

// Trial is one entry of a verification trial list: a pair of sample ids
// labeled as coming from the same speaker or not.
type Trial struct {
	Left        string `json:"left" yaml:"left"`
	Right       string `json:"right" yaml:"right"`
	SameSpeaker bool   `json:"same_speaker" yaml:"same_speaker"`
}

// String renders the canonical textual form: the two sample ids and the
// label separated by single spaces, label 1 for same-speaker trials and 0
// otherwise. This form is what the text sink persists and what the trial
// list is sorted by.
func (t Trial) String() string {
	label := "0"
	if t.SameSpeaker {
		label = "1"
	}
	return t.Left + " " + t.Right + " " + label
}

// ParseTrial parses the canonical textual form produced by String.
func ParseTrial(line string) (Trial, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Trial{}, fmt.Errorf("trial line %q: expected 3 fields, got %d", line, len(fields))
	}
	var same bool
	switch fields[2] {
	case "1":
		same = true
	case "0":
		same = false
	default:
		return Trial{}, fmt.Errorf("trial line %q: label must be 0 or 1", line)
	}
	return Trial{Left: fields[0], Right: fields[1], SameSpeaker: same}, nil
}

// TrialList is an ordered list of trials, positives first.
type TrialList []Trial

// Positives returns the number of same-speaker trials.
func (l TrialList) Positives() int {
	n := 0
	for _, t := range l {
		if t.SameSpeaker {
			n++
		}
	}
	return n
}

// Negatives returns the number of different-speaker trials.
func (l TrialList) Negatives() int {
	return len(l) - l.Positives()
}
