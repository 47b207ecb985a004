package arpa

// Expected records of testdata/lm.arpa.

func fixtureTrigrams() []ProbNgram {
	return []ProbNgram{
		NewProbNgram(-0.21873854, "a a </s>"),
		NewProbNgram(-0.10757457, "you remember i"),
		NewProbNgram(-0.18978158, "<s> i have"),
		NewProbNgram(-0.1770414, "remember i a"),
		NewProbNgram(-0.10225761, "i have a"),
		NewProbNgram(-0.2051335, "i a a"),
		NewProbNgram(-0.21873854, "have a good"),
		NewProbNgram(-0.112957425, "a good deal"),
		NewProbNgram(-0.112957425, "good deal of"),
		NewProbNgram(-0.112957425, "deal of will"),
		NewProbNgram(-0.112957425, "of will you"),
		NewProbNgram(-0.112957425, "will you remember"),
	}
}

func fixtureBigrams() []ProbBackoffNgram {
	return []ProbBackoffNgram{
		NewProbBackoffNgram(-0.68063426, "a </s>", -0.0),
		NewProbBackoffNgram(-0.250891, "<s> i", -0.30103),
		NewProbBackoffNgram(-0.250891, "remember i", -0.30103),
		NewProbBackoffNgram(-0.5346796, "i have", -0.30103),
		NewProbBackoffNgram(-0.4809342, "i a", -0.30103),
		NewProbBackoffNgram(-0.23625793, "have a", -0.30103),
		NewProbBackoffNgram(-0.6071514, "a a", -0.30103),
		NewProbBackoffNgram(-0.68063426, "a good", -0.30103),
		NewProbBackoffNgram(-0.26603433, "good deal", -0.30103),
		NewProbBackoffNgram(-0.26603433, "deal of", -0.30103),
		NewProbBackoffNgram(-0.26603433, "of will", -0.30103),
		NewProbBackoffNgram(-0.26603433, "will you", -0.30103),
		NewProbBackoffNgram(-0.26603433, "you remember", -0.30103),
	}
}

func fixtureUnigrams() []ProbBackoffNgram {
	return []ProbBackoffNgram{
		NewProbBackoffNgram(-1.3424227, "<unk>", -0.0),
		NewProbBackoffNgram(-0.0, "<s>", -0.30103),
		NewProbBackoffNgram(-1.0761548, "</s>", -0.0),
		NewProbBackoffNgram(-0.91229796, "i", -0.30103),
		NewProbBackoffNgram(-1.0761548, "have", -0.30103),
		NewProbBackoffNgram(-0.7936082, "a", -0.30103),
		NewProbBackoffNgram(-1.0761548, "good", -0.30103),
		NewProbBackoffNgram(-1.0761548, "deal", -0.30103),
		NewProbBackoffNgram(-1.0761548, "of", -0.30103),
		NewProbBackoffNgram(-1.0761548, "will", -0.30103),
		NewProbBackoffNgram(-1.0761548, "you", -0.30103),
		NewProbBackoffNgram(-1.0761548, "remember", -0.30103),
	}
}
