package quizgen

import "math/rand/v2"

// Shuffle randomizes the positions of the correct answer among its
// distractors and assigns the four fixed labels in order to the permuted
// texts. It returns the label→text mapping and the label that landed on
// the correct text. With a fair source each label is equally likely to
// be the correct one.
//
// rng may be nil, in which case the shared global source is used.
func Shuffle(rng *rand.Rand, correct string, distractors []string) (map[Label]string, Label) {
	texts := make([]string, 0, 1+len(distractors))
	texts = append(texts, correct)
	texts = append(texts, distractors...)

	swap := func(i, j int) { texts[i], texts[j] = texts[j], texts[i] }
	if rng != nil {
		rng.Shuffle(len(texts), swap)
	} else {
		rand.Shuffle(len(texts), swap)
	}

	labels := Labels()
	options := make(map[Label]string, len(texts))
	var correctLabel Label
	for i, text := range texts {
		options[labels[i]] = text
		if text == correct {
			correctLabel = labels[i]
		}
	}

	return options, correctLabel
}
