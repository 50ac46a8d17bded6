package label

import (
	"fmt"
	"strconv"
)

// Mora is the minimal rhythmic unit: an optional consonant plus a vowel.
type Mora struct {
	Consonant *Phoneme
	Vowel     Phoneme
}

// Phonemes returns the mora's phonemes in pronunciation order.
func (m Mora) Phonemes() []Phoneme {
	if m.Consonant != nil {
		return []Phoneme{*m.Consonant, m.Vowel}
	}
	return []Phoneme{m.Vowel}
}

// AccentPhrase is a run of moras sharing one pitch-accent pattern.
type AccentPhrase struct {
	Moras           []Mora
	Accent          int
	IsInterrogative bool
}

// BreathGroup is a maximal run of accent phrases uninterrupted by a pause.
type BreathGroup struct {
	AccentPhrases []AccentPhrase
}

// Utterance is the full breath-group sequence for one synthesis request.
type Utterance struct {
	BreathGroups []BreathGroup
}

// NewAccentPhrase segments one phoneme run into moras and reads the accent
// index and interrogative flag off the vowel context fields.
//
// Segmentation stops at the a2 sentinel "49"; upstream emits it for mora
// positions past its own counter and the remainder is defined to be cut,
// not rejected.
func NewAccentPhrase(phonemes []Phoneme) (AccentPhrase, error) {
	var moras []Mora
	var buf []Phoneme

	for i := range phonemes {
		if phonemes[i].A2 == "49" {
			break
		}
		buf = append(buf, phonemes[i])

		if i+1 < len(phonemes) && phonemes[i].A2 == phonemes[i+1].A2 {
			continue
		}
		switch len(buf) {
		case 1:
			moras = append(moras, Mora{Vowel: buf[0]})
		case 2:
			consonant := buf[0]
			moras = append(moras, Mora{Consonant: &consonant, Vowel: buf[1]})
		default:
			return AccentPhrase{}, fmt.Errorf("%w: %d phonemes at mora position %s", ErrTooLongMora, len(buf), phonemes[i].A2)
		}
		buf = nil
	}

	if len(moras) == 0 {
		return AccentPhrase{}, fmt.Errorf("%w: accent phrase has no moras", ErrInvalidMora)
	}

	accent, err := strconv.Atoi(moras[0].Vowel.F2)
	if err != nil {
		return AccentPhrase{}, fmt.Errorf("%w: accent index %q: %v", ErrInvalidMora, moras[0].Vowel.F2, err)
	}

	// workaround kept from upstream: labels can claim an accent position
	// past the end of the phrase
	if accent > len(moras) {
		accent = len(moras)
	}

	return AccentPhrase{
		Moras:           moras,
		Accent:          accent,
		IsInterrogative: moras[len(moras)-1].Vowel.F3 == "1",
	}, nil
}

// NewBreathGroup splits a pause-free phoneme run into accent phrases on
// every change of the i3/f5 context pair.
func NewBreathGroup(phonemes []Phoneme) (BreathGroup, error) {
	var group BreathGroup
	var buf []Phoneme

	for i := range phonemes {
		buf = append(buf, phonemes[i])
		if i+1 < len(phonemes) &&
			phonemes[i].I3 == phonemes[i+1].I3 &&
			phonemes[i].F5 == phonemes[i+1].F5 {
			continue
		}
		phrase, err := NewAccentPhrase(buf)
		if err != nil {
			return BreathGroup{}, err
		}
		group.AccentPhrases = append(group.AccentPhrases, phrase)
		buf = nil
	}

	return group, nil
}

// NewUtterance splits the phoneme sequence at pause phonemes and builds a
// breath group from every non-empty run in between. The pause phonemes
// themselves only mark boundaries and are dropped.
func NewUtterance(phonemes []Phoneme) (Utterance, error) {
	var utterance Utterance
	var buf []Phoneme

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		group, err := NewBreathGroup(buf)
		if err != nil {
			return err
		}
		utterance.BreathGroups = append(utterance.BreathGroups, group)
		buf = nil
		return nil
	}

	for _, p := range phonemes {
		if p.IsPause() {
			if err := flush(); err != nil {
				return Utterance{}, err
			}
			continue
		}
		buf = append(buf, p)
	}

	return utterance, nil
}
