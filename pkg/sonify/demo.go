package sonify

// DemoScore returns the built-in demonstration sequence: every concrete
// voice plays every duration code once, with hues sweeping the full wheel
// through the pitch mapper and a fixed amplitude ramp. The score is a
// constant of the program; repeated runs produce identical output.
func DemoScore() []NoteSpec {
	specs := make([]NoteSpec, 0, len(concreteVoices)*NumDurationCodes)
	for vi, voice := range concreteVoices {
		for code := 0; code < NumDurationCodes; code++ {
			step := vi*NumDurationCodes + code
			hue := float64(step) * 360.0 / float64(len(concreteVoices)*NumDurationCodes)
			amp := 0.4 + 0.6*float64(code)/float64(DurationCodeMax)
			specs = append(specs, NoteSpec{
				Frequency:    PitchFromHue(hue),
				Amplitude:    amp,
				DurationCode: code,
				Voice:        voice,
			})
		}
	}
	return specs
}
