package respond

// ReturningMarker prefixes every returning-user reply so the relationship
// history is visible in the response itself.
const ReturningMarker = "🌿 "

var firstEntryTable = map[string][]string{
	"anxious": {
		"Sounds heavy. I'm here with you.",
		"Deep breath. You showed up today.",
		"That sounds stressful. Thanks for telling me.",
	},
	"excited": {
		"Love that energy! Tell me more soon.",
		"That spark comes right through.",
	},
	"sad": {
		"I'm sorry it's been hard. I'm listening.",
		"That sounds really tough. I'm here.",
	},
	"frustrated": {
		"That would frustrate me too.",
		"Totally fair to be annoyed by that.",
	},
	"exhausted": {
		"Rest counts as progress too.",
		"You've been carrying a lot today.",
	},
	"calm": {
		"What a peaceful note to begin on.",
		"Savor that calm. It suits you.",
	},
	"reflective": {
		"Thanks for sharing your day with me.",
		"Glad you wrote today. I'm listening.",
	},
}

var firstEntryFallback = []string{
	"Thank you for sharing that with me.",
	"I'm glad you're here. Keep going.",
}

var returningTable = map[string][]string{
	"anxious": {
		ReturningMarker + "Stress again? Let's unpack it.",
		ReturningMarker + "Still tense. I've got you.",
	},
	"excited": {
		ReturningMarker + "There's that spark again!",
		ReturningMarker + "More good news? Love it.",
	},
	"sad": {
		ReturningMarker + "Heavy days pass. I'm here.",
		ReturningMarker + "I hear you. Rough stretch.",
	},
	"frustrated": {
		ReturningMarker + "That again? So draining.",
		ReturningMarker + "Fair to be fed up.",
	},
	"exhausted": {
		ReturningMarker + "Running low again. Rest up.",
		ReturningMarker + "Your tank sounds empty.",
	},
	"calm": {
		ReturningMarker + "Back to steady. Nice.",
		ReturningMarker + "That calm looks good on you.",
	},
	"reflective": {
		ReturningMarker + "Good to see you back.",
		ReturningMarker + "Another day, noted.",
	},
}

var returningFallback = []string{
	ReturningMarker + "Good to hear from you again.",
	ReturningMarker + "Welcome back. I'm listening.",
}

// carryInSuffix notes the recurring theme when an entry carries in.
// Missing themes simply get no suffix.
var carryInSuffix = map[string]string{
	"work-life balance": " Work keeps coming up.",
	"relationships":     " People are on your mind.",
	"health & wellness": " Your body keeps talking.",
	"money & finances":  " Money's weighing on you.",
	"self-growth":       " Growth takes patience.",
	"creative pursuits": " Keep making things.",
	"daily reflection":  " This thread continues.",
}
