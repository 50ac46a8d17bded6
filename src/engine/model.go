package engine

// MoraModel is the model-facing view of one mora. Length and pitch start
// at zero and are filled in by AssignDurations/AssignPitches; every stage
// returns fresh values instead of mutating its input.
//
// An absent consonant is the empty string; the phoneme symbol set never
// contains it, so the sentinel is unambiguous.
type MoraModel struct {
	Text            string  `json:"text"`
	Consonant       string  `json:"consonant,omitempty"`
	ConsonantLength float32 `json:"consonant_length,omitempty"`
	Vowel           string  `json:"vowel"`
	VowelLength     float32 `json:"vowel_length"`
	Pitch           float32 `json:"pitch"`
}

// HasConsonant reports whether the mora opens with a consonant phoneme.
func (m MoraModel) HasConsonant() bool {
	return m.Consonant != ""
}

// AccentPhraseModel is the long-lived representation threaded through the
// pipeline. PauseMora is set only on the last accent phrase of a breath
// group that is not the utterance's last.
type AccentPhraseModel struct {
	Moras           []MoraModel `json:"moras"`
	Accent          int         `json:"accent"`
	PauseMora       *MoraModel  `json:"pause_mora,omitempty"`
	IsInterrogative bool        `json:"is_interrogative"`
}
