package conversation

// Follow-up question banks. Per-category base banks plus early/late variants
// for the two categories where the second exchange tends to differ from
// later ones.

var categoryFollowUps = map[string][]string{
	"academic_stress": {
		"What specific academic challenges are you facing?",
		"How long have you been feeling this academic pressure?",
		"Have you been able to talk to any professors or advisors about this?",
	},
	"social_isolation": {
		"How long have you been feeling lonely?",
		"What kinds of social connections are you hoping to make?",
		"Have you tried joining any clubs or activities on campus?",
	},
	"cultural_adjustment": {
		"What aspects of cultural adjustment are most challenging?",
		"How long have you been away from home?",
		"Have you connected with other international students?",
	},
	"self_esteem": {
		"What situations tend to trigger these feelings?",
		"How do these feelings affect your daily life?",
		"What usually helps you feel more confident?",
	},
}

// secondTurnFollowUps apply when this is the user's second message.
var secondTurnFollowUps = map[string][]string{
	"social_isolation": {
		"Is this feeling new since you started here, or something longer-standing?",
		"Are there people around you that you'd like to be closer to?",
	},
	"academic_stress": {
		"Which class or deadline is weighing on you the most right now?",
		"Is this about one specific course, or the workload overall?",
	},
}

// laterTurnFollowUps apply from the third message onward.
var laterTurnFollowUps = map[string][]string{
	"social_isolation": {
		"Of the things we've talked about, what feels like the smallest first step socially?",
		"Would connecting with a peer support group feel manageable right now?",
	},
	"academic_stress": {
		"Has anything we've discussed helped with the pressure so far?",
		"Would it help to walk through a plan for the next week together?",
	},
}

var genericFollowUps = []string{
	"Would you like to talk more about what's been bothering you?",
	"How long have you been feeling this way?",
	"What kind of support do you think would be most helpful?",
	"Have you been able to talk to anyone else about this?",
}

// followUpCandidates assembles the candidate list for the given categories
// and turn number, excluding questions already asked this session. At most
// three candidates come back; the generic bank is the fallback when every
// category question is exhausted.
func followUpCandidates(categories []string, turn int, asked map[string]bool) []string {
	var candidates []string
	add := func(qs []string) {
		for _, q := range qs {
			if !asked[q] {
				candidates = append(candidates, q)
			}
		}
	}

	for _, category := range categories {
		if turn == 2 {
			add(secondTurnFollowUps[category])
		} else if turn >= 3 {
			add(laterTurnFollowUps[category])
		}
		add(categoryFollowUps[category])
	}
	if len(candidates) == 0 {
		add(genericFollowUps)
	}

	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}
